// Package stub is a self-contained development stand-in for the production
// K-CLEAN backend. It implements the REST contract the client consumes so
// flows can run end to end without the real service; it is not that service
// and enforces only the rules the client needs to observe.
package stub

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/config"
	"github.com/spec-kit/kclean/internal/domain"
	"github.com/spec-kit/kclean/internal/events"
	"github.com/spec-kit/kclean/internal/observability"
	"github.com/spec-kit/kclean/internal/stub/store"
)

// App bundles the stub's fiber app and its dependencies.
type App struct {
	cfg        config.StubConfig
	store      *store.Store
	tokens     *TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	fiber      *fiber.App
}

// New assembles the stub: storage, token manager, event wiring, routes, and
// the seeded admin account.
func New(cfg config.StubConfig, logger *zap.Logger) (*App, error) {
	st, err := store.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	app := &App{
		cfg:        cfg,
		store:      st,
		tokens:     NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		dispatcher: events.NewInMemoryDispatcher(),
		logger:     logger,
		fiber:      fiber.New(fiber.Config{DisableStartupMessage: true}),
	}

	app.subscribeNotifications()

	app.fiber.Use(app.errorMiddleware())
	app.fiber.Use(observability.RequestLogger(logger))
	app.registerRoutes()

	if err := app.seedAdmin(context.Background()); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return app, nil
}

// Listen serves on the configured address until shutdown.
func (a *App) Listen() error {
	return a.fiber.Listen(a.cfg.Addr())
}

// Serve accepts connections on an existing listener; tests use this with an
// ephemeral port.
func (a *App) Serve(ln net.Listener) error {
	return a.fiber.Listener(ln)
}

// Shutdown stops the server and closes the store.
func (a *App) Shutdown() error {
	err := a.fiber.Shutdown()
	if closeErr := a.store.Close(); err == nil {
		err = closeErr
	}
	return err
}

// seedAdmin provisions the administrator account on first run.
func (a *App) seedAdmin(ctx context.Context) error {
	if _, err := a.store.GetUserByEmail(ctx, a.cfg.AdminEmail); err == nil {
		return nil
	}

	hash, err := HashPassword(a.cfg.AdminPassword, a.cfg.BcryptCost)
	if err != nil {
		return err
	}
	admin := &store.UserRecord{
		Subject: domain.Subject{
			ID:         uuid.NewString(),
			PublicCode: uuid.NewString(),
			Name:       "Administrator",
			Email:      a.cfg.AdminEmail,
			Role:       domain.RoleAdmin,
		},
		PasswordHash: hash,
	}
	return a.store.CreateUser(ctx, admin)
}

// subscribeNotifications turns point movements into resident notifications.
func (a *App) subscribeNotifications() {
	write := func(title string) events.EventHandler {
		return func(ctx context.Context, event events.Event) error {
			err := a.store.CreateNotification(ctx, &domain.Notification{
				ID:        uuid.NewString(),
				UserID:    event.SubjectID,
				Title:     title,
				Body:      event.Detail,
				CreatedAt: event.OccurredAt,
			})
			if err != nil {
				a.logger.Warn("notification write failed", zap.Error(err))
			}
			return err
		}
	}

	a.dispatcher.Subscribe(events.EventDepositRecorded, write("Poin masuk"))
	a.dispatcher.Subscribe(events.EventVoucherPurchased, write("Voucher dibeli"))
	a.dispatcher.Subscribe(events.EventVoucherRedeemed, write("Voucher digunakan"))
}

func (a *App) publish(ctx context.Context, eventType events.EventType, subjectID string, points int, detail string) {
	_ = a.dispatcher.Publish(ctx, events.Event{
		Type:       eventType,
		SubjectID:  subjectID,
		Points:     points,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	})
}
