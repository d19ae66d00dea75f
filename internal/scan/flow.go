package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/api"
	"github.com/spec-kit/kclean/internal/domain"
)

// State is the scan flow's position in its lifecycle.
type State int

const (
	// StateIdle means the camera is active and the flow awaits a decode.
	StateIdle State = iota
	// StateResolving means an identifier was extracted and the subject
	// lookup is in flight.
	StateResolving
	// StateConfirming means the subject resolved and the operator must
	// confirm (and, for weighing, enter the weight).
	StateConfirming
	// StateSubmitting means the transaction POST is in flight.
	StateSubmitting
	// StateSucceeded is terminal for the attempt; the flow hands control
	// back to the host after the display delay.
	StateSucceeded
	// StateFailed is terminal for the attempt until acknowledged.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateConfirming:
		return "confirming"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Failure reasons.
const (
	ReasonSubjectNotFound = "subject_not_found"
	ReasonRejected        = "rejected"
)

// Failure describes why an attempt ended in StateFailed. Message is always
// safe to show the operator.
type Failure struct {
	Reason  string
	Message string
}

// Camera abstracts the decode source. Start delivers decoded payloads to
// the callback until Stop; both must be safe to call repeatedly.
type Camera interface {
	Start(onDecode func(raw string)) error
	Stop() error
}

// Subject is the entity a decoded code resolved to: a resident for the
// weighing flow or a voucher claim for the redemption flow.
type Subject struct {
	Code     string
	Resident *domain.Subject
	Claim    *domain.UserVoucher
}

// Payload carries the operator-entered transaction fields. The redemption
// flow submits it empty.
type Payload struct {
	Category domain.TrashCategory
	WeightKg float64
}

// Resolver looks up the scanned subject.
type Resolver func(ctx context.Context, code string) (*Subject, error)

// Validator refuses a payload locally, before any network call.
type Validator func(payload Payload) error

// Submitter posts the transaction and returns the success message.
type Submitter func(ctx context.Context, code string, payload Payload) (string, error)

// Flow drives one scan screen: decode, resolve, confirm, submit. All state
// transitions go through its mutex; stale async results are discarded by
// generation counting, so cancelling or tearing down the screen simply
// abandons whatever was in flight.
type Flow struct {
	camera       Camera
	resolve      Resolver
	validate     Validator
	submit       Submitter
	successDelay time.Duration
	onDone       func()
	logger       *zap.Logger

	mu      sync.Mutex
	state   State
	gen     int
	subject *Subject
	failure *Failure
	message string
}

// Config assembles a Flow.
type Config struct {
	Camera       Camera
	Resolve      Resolver
	Validate     Validator
	Submit       Submitter
	SuccessDelay time.Duration
	// OnDone is called once after the success display delay so the host
	// dashboard can navigate away.
	OnDone func()
	Logger *zap.Logger
}

// NewFlow builds a flow in StateIdle. Call Start to activate the camera.
func NewFlow(cfg Config) *Flow {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{
		camera:       cfg.Camera,
		resolve:      cfg.Resolve,
		validate:     cfg.Validate,
		submit:       cfg.Submit,
		successDelay: cfg.SuccessDelay,
		onDone:       cfg.OnDone,
		logger:       logger,
		state:        StateIdle,
	}
}

// Start acquires the camera. Without a camera the flow still accepts manual
// identifiers through Decode; camera access must never be a hard dependency
// for completing a transaction.
func (f *Flow) Start(ctx context.Context) {
	f.startCamera(ctx)
}

func (f *Flow) startCamera(ctx context.Context) {
	if f.camera == nil {
		return
	}
	err := f.camera.Start(func(raw string) {
		f.Decode(ctx, raw)
	})
	if err != nil {
		f.logger.Warn("camera start failed, manual entry only", zap.Error(err))
	}
}

func (f *Flow) stopCamera() {
	if f.camera == nil {
		return
	}
	if err := f.camera.Stop(); err != nil {
		f.logger.Warn("camera stop failed", zap.Error(err))
	}
}

// Decode feeds a decoded payload (or manually entered identifier) into the
// flow. Events arriving outside StateIdle are ignored, which collapses
// rapid duplicate decodes into a single lookup. Returns whether the event
// was accepted.
func (f *Flow) Decode(ctx context.Context, raw string) bool {
	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return false
	}
	// Release the camera before leaving Idle so the decoder cannot fire
	// for a scan already being processed.
	f.stopCamera()
	f.state = StateResolving
	gen := f.gen
	f.mu.Unlock()

	code := ExtractIdentifier(raw)
	subject, err := f.resolve(ctx, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.state != StateResolving {
		return false
	}
	if err != nil {
		reason := ReasonRejected
		if errors.Is(err, api.ErrNotFound) {
			reason = ReasonSubjectNotFound
		}
		f.state = StateFailed
		f.failure = &Failure{Reason: reason, Message: api.UserMessage(err)}
		return true
	}
	subject.Code = code
	f.subject = subject
	f.state = StateConfirming
	return true
}

// Cancel abandons a resolved subject and returns to scanning. Only
// meaningful in StateConfirming; the partial payload is the caller's and is
// simply discarded with the subject.
func (f *Flow) Cancel(ctx context.Context) {
	f.mu.Lock()
	if f.state != StateConfirming {
		f.mu.Unlock()
		return
	}
	f.reset()
	f.mu.Unlock()

	f.startCamera(ctx)
}

// Submit posts the transaction. Local validation refuses the transition
// without touching the network, leaving the flow in StateConfirming for the
// operator to fix the input.
func (f *Flow) Submit(ctx context.Context, payload Payload) error {
	f.mu.Lock()
	if f.state != StateConfirming {
		f.mu.Unlock()
		return errors.New("no transaction awaiting confirmation")
	}
	if f.validate != nil {
		if err := f.validate(payload); err != nil {
			f.mu.Unlock()
			return err
		}
	}
	code := f.subject.Code
	f.state = StateSubmitting
	gen := f.gen
	f.mu.Unlock()

	message, err := f.submit(ctx, code, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.state != StateSubmitting {
		return nil
	}
	if err != nil {
		f.state = StateFailed
		f.failure = &Failure{Reason: ReasonRejected, Message: api.UserMessage(err)}
		return nil
	}

	f.state = StateSucceeded
	f.message = message
	time.AfterFunc(f.successDelay, func() {
		f.finish(gen)
	})
	return nil
}

// finish hands control back to the host after the success display delay,
// unless the screen was torn down meanwhile.
func (f *Flow) finish(gen int) {
	f.mu.Lock()
	live := f.gen == gen && f.state == StateSucceeded
	f.mu.Unlock()
	if live && f.onDone != nil {
		f.onDone()
	}
}

// Acknowledge dismisses a failure and resumes scanning.
func (f *Flow) Acknowledge(ctx context.Context) {
	f.mu.Lock()
	if f.state != StateFailed {
		f.mu.Unlock()
		return
	}
	f.reset()
	f.mu.Unlock()

	f.startCamera(ctx)
}

// Teardown releases the camera and invalidates any in-flight work. Late
// lookup or submission results for the old generation are dropped.
func (f *Flow) Teardown() {
	f.mu.Lock()
	f.reset()
	f.mu.Unlock()

	f.stopCamera()
}

// reset must be called with the mutex held.
func (f *Flow) reset() {
	f.gen++
	f.state = StateIdle
	f.subject = nil
	f.failure = nil
	f.message = ""
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Subject returns the resolved subject while confirming or later.
func (f *Flow) Subject() *Subject {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subject
}

// FailureInfo returns the failure details in StateFailed.
func (f *Flow) FailureInfo() *Failure {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failure
}

// SuccessMessage returns the submission result in StateSucceeded.
func (f *Flow) SuccessMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}
