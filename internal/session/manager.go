package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/api"
	"github.com/spec-kit/kclean/internal/api/dto"
	"github.com/spec-kit/kclean/internal/domain"
)

// ValidationError reports a client-side input problem caught before any
// network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DecisionKind enumerates authorize outcomes.
type DecisionKind int

const (
	// DecisionWait means session restore has not finished; render nothing
	// and decide later. Redirecting now would flash the wrong screen.
	DecisionWait DecisionKind = iota
	DecisionAllow
	DecisionRedirect
)

// Decision is the outcome of an access-control check.
type Decision struct {
	Kind         DecisionKind
	RedirectPath string
}

// LoginPath is where unauthenticated navigation is sent.
const LoginPath = "/login"

// Manager is the single source of truth for who is logged in and with what
// role. All mutation happens through Restore, Login, Register, Logout and
// the expiry hook; screens only read.
type Manager struct {
	client *api.Client
	store  Store
	logger *zap.Logger

	mu          sync.RWMutex
	token       string
	subject     *domain.Subject
	initialized bool
}

// NewManager builds the manager and wires it into the client as the token
// source and the central 401 handler.
func NewManager(client *api.Client, store Store, logger *zap.Logger) *Manager {
	m := &Manager{client: client, store: store, logger: logger}
	client.SetTokenSource(m.Token)
	client.SetSessionExpiredHandler(m.expire)
	return m
}

// Restore loads previously persisted credentials. It runs exactly once at
// startup, never touches the network, and marks the manager initialized no
// matter what it finds. Restored data is trusted until the first
// authenticated request says otherwise.
func (m *Manager) Restore() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return
	}
	m.initialized = true

	token, rawSubject, err := m.store.Load()
	if err != nil {
		m.logger.Warn("session restore failed, starting logged out", zap.Error(err))
		return
	}
	if token == "" || len(rawSubject) == 0 {
		return
	}

	var subject domain.Subject
	if err := json.Unmarshal(rawSubject, &subject); err != nil {
		m.logger.Warn("persisted subject unreadable, starting logged out", zap.Error(err))
		return
	}

	m.token = token
	m.subject = &subject
}

// Login authenticates and persists the session. The returned subject lets
// the caller branch navigation by role.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.Subject, error) {
	resp, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.adopt(resp.Token, resp.User)
	return m.Subject(), nil
}

// RegisterInput carries the new-account form.
type RegisterInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

func (in RegisterInput) validate() error {
	for _, pair := range []struct{ field, value string }{
		{"nama", in.Name},
		{"email", in.Email},
		{"password", in.Password},
		{"konfirmasi password", in.PasswordConfirmation},
	} {
		if strings.TrimSpace(pair.value) == "" {
			return &ValidationError{Message: "Kolom " + pair.field + " wajib diisi."}
		}
	}
	if in.Password != in.PasswordConfirmation {
		return &ValidationError{Message: "Konfirmasi password tidak cocok."}
	}
	return nil
}

// Register creates a resident account. Validation short-circuits before any
// network call; a successful response is persisted like a login.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (*domain.Subject, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	resp, err := m.client.Register(ctx, dto.RegisterRequest{
		Name:                 in.Name,
		Email:                in.Email,
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	})
	if err != nil {
		return nil, err
	}
	m.adopt(resp.Token, resp.User)
	return m.Subject(), nil
}

// Logout tells the backend best-effort, then unconditionally clears local
// state. From the user's perspective logout always succeeds.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.client.Logout(ctx); err != nil {
		m.logger.Warn("logout request failed, clearing local session anyway", zap.Error(err))
	}
	m.clear()
}

// expire handles an auth rejection reported by the client: same clearing
// behavior as logout, minus the backend call that just failed.
func (m *Manager) expire() {
	m.logger.Info("session rejected by backend, clearing credentials")
	m.clear()
}

func (m *Manager) adopt(token string, subject domain.Subject) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.subject = &subject
	m.initialized = true

	raw, err := json.Marshal(subject)
	if err != nil {
		m.logger.Warn("subject not persistable", zap.Error(err))
		return
	}
	if err := m.store.Save(token, raw); err != nil {
		m.logger.Warn("session persist failed, reload will require login", zap.Error(err))
	}
}

func (m *Manager) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.subject = nil
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("session store clear failed", zap.Error(err))
	}
}

// Authorize decides whether the current session may view a screen requiring
// one of the given roles (none means any authenticated role). It is pure
// with respect to session state and never redirects before initialization.
func (m *Manager) Authorize(required ...domain.Role) Decision {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return Decision{Kind: DecisionWait}
	}
	if m.token == "" || m.subject == nil {
		return Decision{Kind: DecisionRedirect, RedirectPath: LoginPath}
	}
	if len(required) == 0 {
		return Decision{Kind: DecisionAllow}
	}
	for _, role := range required {
		if m.subject.Role == role {
			return Decision{Kind: DecisionAllow}
		}
	}
	return Decision{Kind: DecisionRedirect, RedirectPath: m.subject.Role.HomePath()}
}

// Token returns the current bearer token, empty when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Subject returns a copy of the logged-in account, nil when logged out.
func (m *Manager) Subject() *domain.Subject {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.subject == nil {
		return nil
	}
	copied := *m.subject
	return &copied
}

// Initialized reports whether Restore has run.
func (m *Manager) Initialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}
