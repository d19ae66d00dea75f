package scan

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/api"
	"github.com/spec-kit/kclean/internal/domain"
	"github.com/spec-kit/kclean/internal/session"
)

type fakeCamera struct {
	mu       sync.Mutex
	starts   int
	stops    int
	onDecode func(string)
}

func (f *fakeCamera) Start(onDecode func(string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	f.onDecode = onDecode
	return nil
}

func (f *fakeCamera) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return nil
}

func (f *fakeCamera) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts, f.stops
}

func residentResolver(calls *int) Resolver {
	return func(ctx context.Context, code string) (*Subject, error) {
		*calls++
		return &Subject{Resident: &domain.Subject{ID: "u1", PublicCode: code, Name: "Budi"}}, nil
	}
}

func weighingValidator(payload Payload) error {
	if payload.WeightKg <= 0 {
		return &session.ValidationError{Message: "Masukkan berat sampah yang valid"}
	}
	return nil
}

func TestFlowDuplicateDecodesCollapse(t *testing.T) {
	resolves := 0
	flow := NewFlow(Config{
		Resolve: residentResolver(&resolves),
		Logger:  zap.NewNop(),
	})

	ctx := context.Background()
	require.True(t, flow.Decode(ctx, "ABC"))
	require.False(t, flow.Decode(ctx, "ABC"))
	require.False(t, flow.Decode(ctx, "ABC"))

	require.Equal(t, 1, resolves)
	require.Equal(t, StateConfirming, flow.State())
	require.Equal(t, "ABC", flow.Subject().Code)
}

func TestFlowStopsCameraBeforeResolving(t *testing.T) {
	camera := &fakeCamera{}
	resolves := 0
	flow := NewFlow(Config{
		Camera:  camera,
		Resolve: residentResolver(&resolves),
		Logger:  zap.NewNop(),
	})

	ctx := context.Background()
	flow.Start(ctx)
	starts, stops := camera.counts()
	require.Equal(t, 1, starts)
	require.Equal(t, 0, stops)

	flow.Decode(ctx, "ABC")
	_, stops = camera.counts()
	require.Equal(t, 1, stops)
}

func TestFlowUnknownSubject(t *testing.T) {
	flow := NewFlow(Config{
		Resolve: func(ctx context.Context, code string) (*Subject, error) {
			return nil, api.ErrNotFound
		},
		Logger: zap.NewNop(),
	})

	flow.Decode(context.Background(), "MISSING")

	require.Equal(t, StateFailed, flow.State())
	failure := flow.FailureInfo()
	require.Equal(t, ReasonSubjectNotFound, failure.Reason)
	require.NotEmpty(t, failure.Message)
}

func TestFlowAcknowledgeResumesScanning(t *testing.T) {
	camera := &fakeCamera{}
	flow := NewFlow(Config{
		Camera: camera,
		Resolve: func(ctx context.Context, code string) (*Subject, error) {
			return nil, api.ErrNotFound
		},
		Logger: zap.NewNop(),
	})

	ctx := context.Background()
	flow.Start(ctx)
	flow.Decode(ctx, "MISSING")
	require.Equal(t, StateFailed, flow.State())

	flow.Acknowledge(ctx)
	require.Equal(t, StateIdle, flow.State())
	starts, _ := camera.counts()
	require.Equal(t, 2, starts)
}

func TestFlowSubmitValidationStaysLocal(t *testing.T) {
	resolves := 0
	submits := 0
	flow := NewFlow(Config{
		Resolve:  residentResolver(&resolves),
		Validate: weighingValidator,
		Submit: func(ctx context.Context, code string, payload Payload) (string, error) {
			submits++
			return "Point terkirim", nil
		},
		Logger: zap.NewNop(),
	})

	ctx := context.Background()
	flow.Decode(ctx, "ABC")

	for _, weight := range []float64{0, -2} {
		err := flow.Submit(ctx, Payload{Category: domain.TrashOrganik, WeightKg: weight})
		var vErr *session.ValidationError
		require.ErrorAs(t, err, &vErr)
		require.Equal(t, "Masukkan berat sampah yang valid", vErr.Message)
	}

	require.Equal(t, 0, submits)
	require.Equal(t, StateConfirming, flow.State())
}

func TestFlowSubmitSuccessHandsBackAfterDelay(t *testing.T) {
	resolves := 0
	doneCh := make(chan struct{})
	flow := NewFlow(Config{
		Resolve:  residentResolver(&resolves),
		Validate: weighingValidator,
		Submit: func(ctx context.Context, code string, payload Payload) (string, error) {
			require.Equal(t, "ABC", code)
			require.Equal(t, 5.0, payload.WeightKg)
			return "Point terkirim", nil
		},
		SuccessDelay: 10 * time.Millisecond,
		OnDone:       func() { close(doneCh) },
		Logger:       zap.NewNop(),
	})

	ctx := context.Background()
	flow.Decode(ctx, "ABC")
	require.NoError(t, flow.Submit(ctx, Payload{Category: domain.TrashOrganik, WeightKg: 5}))

	require.Equal(t, StateSucceeded, flow.State())
	require.Equal(t, "Point terkirim", flow.SuccessMessage())

	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("onDone never fired")
	}
}

func TestFlowTeardownSuppressesHandBack(t *testing.T) {
	resolves := 0
	done := false
	flow := NewFlow(Config{
		Resolve: residentResolver(&resolves),
		Submit: func(ctx context.Context, code string, payload Payload) (string, error) {
			return "ok", nil
		},
		SuccessDelay: 10 * time.Millisecond,
		OnDone:       func() { done = true },
		Logger:       zap.NewNop(),
	})

	ctx := context.Background()
	flow.Decode(ctx, "ABC")
	require.NoError(t, flow.Submit(ctx, Payload{}))
	flow.Teardown()

	time.Sleep(50 * time.Millisecond)
	require.False(t, done)
}

func TestFlowSubmitRejectionShowsBackendMessage(t *testing.T) {
	resolves := 0
	flow := NewFlow(Config{
		Resolve: residentResolver(&resolves),
		Submit: func(ctx context.Context, code string, payload Payload) (string, error) {
			return "", &api.Error{Status: 400, Message: "Voucher sudah digunakan"}
		},
		Logger: zap.NewNop(),
	})

	ctx := context.Background()
	flow.Decode(ctx, "ABC")
	require.NoError(t, flow.Submit(ctx, Payload{}))

	require.Equal(t, StateFailed, flow.State())
	failure := flow.FailureInfo()
	require.Equal(t, ReasonRejected, failure.Reason)
	require.Equal(t, "Voucher sudah digunakan", failure.Message)
}

func TestFlowCancelReturnsToScanning(t *testing.T) {
	camera := &fakeCamera{}
	resolves := 0
	flow := NewFlow(Config{
		Camera:  camera,
		Resolve: residentResolver(&resolves),
		Logger:  zap.NewNop(),
	})

	ctx := context.Background()
	flow.Start(ctx)
	flow.Decode(ctx, "ABC")
	require.Equal(t, StateConfirming, flow.State())

	flow.Cancel(ctx)
	require.Equal(t, StateIdle, flow.State())
	require.Nil(t, flow.Subject())
	starts, _ := camera.counts()
	require.Equal(t, 2, starts)

	// A fresh decode starts a new attempt.
	flow.Decode(ctx, "DEF")
	require.Equal(t, StateConfirming, flow.State())
	require.Equal(t, 2, resolves)
}

func TestFlowStaleResolveDropped(t *testing.T) {
	release := make(chan struct{})
	resolved := make(chan struct{})
	flow := NewFlow(Config{
		Resolve: func(ctx context.Context, code string) (*Subject, error) {
			close(resolved)
			<-release
			return &Subject{Resident: &domain.Subject{ID: "u1"}}, nil
		},
		Logger: zap.NewNop(),
	})

	ctx := context.Background()
	go flow.Decode(ctx, "ABC")
	<-resolved
	flow.Teardown()
	close(release)

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, StateIdle, flow.State())
	require.Nil(t, flow.Subject())
}

func TestFlowSubmitWithoutConfirmation(t *testing.T) {
	flow := NewFlow(Config{Logger: zap.NewNop()})
	err := flow.Submit(context.Background(), Payload{})
	require.Error(t, err)
	require.False(t, errors.Is(err, api.ErrNotFound))
}
