package poll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPollerFetchesImmediately(t *testing.T) {
	applied := make(chan any, 1)
	p := &Poller{
		Interval: time.Hour,
		Fetch: func(ctx context.Context) (any, error) {
			return 42, nil
		},
		Apply: func(result any) {
			applied <- result
		},
	}
	p.Start(context.Background())
	defer p.Stop()

	select {
	case result := <-applied:
		require.Equal(t, 42, result)
	case <-time.After(time.Second):
		t.Fatal("first tick never applied")
	}
}

func TestPollerRepeats(t *testing.T) {
	var mu sync.Mutex
	count := 0
	p := &Poller{
		Interval: 5 * time.Millisecond,
		Fetch: func(ctx context.Context) (any, error) {
			return struct{}{}, nil
		},
		Apply: func(any) {
			mu.Lock()
			count++
			mu.Unlock()
		},
	}
	p.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, count, 3)
}

func TestPollerNeverAppliesAfterStop(t *testing.T) {
	release := make(chan struct{})
	fetching := make(chan struct{})
	applied := false
	p := &Poller{
		Interval: time.Hour,
		Fetch: func(ctx context.Context) (any, error) {
			close(fetching)
			<-release
			return struct{}{}, nil
		},
		Apply: func(any) {
			applied = true
		},
	}

	p.Start(context.Background())
	<-fetching

	go func() {
		// Let Stop block on the in-flight fetch, then release it.
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()
	p.Stop()

	require.False(t, applied)
}

func TestPollerSwallowsFetchErrors(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	p := &Poller{
		Interval: 5 * time.Millisecond,
		Fetch: func(ctx context.Context) (any, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return nil, errors.New("backend away")
		},
		Apply: func(any) {
			t.Error("apply called for failed fetch")
		},
		Logger: zap.NewNop(),
	}
	p.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, calls, 2)
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := &Poller{
		Interval: time.Hour,
		Fetch: func(ctx context.Context) (any, error) {
			return struct{}{}, nil
		},
		Apply: func(any) {},
	}
	p.Start(context.Background())
	p.Stop()
	p.Stop()
}
