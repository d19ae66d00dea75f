// Package poll provides the cancellable repeating fetch used by dashboard
// screens. Each tick is independent; the latest successful response wins,
// and nothing is applied once the owning screen has been torn down.
package poll

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Poller re-runs a fetch on a fixed interval and hands each result to
// Apply. It is bound to a screen's lifetime: Stop (or context cancellation)
// prevents any further Apply calls, including for a fetch already in
// flight.
type Poller struct {
	Interval time.Duration
	Fetch    func(ctx context.Context) (any, error)
	Apply    func(result any)
	Logger   *zap.Logger

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Start begins polling immediately, then on every interval tick, until Stop
// or ctx is cancelled. It returns without blocking.
func (p *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	p.stopped = false
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		p.tick(ctx)

		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.tick(ctx)
			}
		}
	}()
}

func (p *Poller) tick(ctx context.Context) {
	result, err := p.Fetch(ctx)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Warn("poll fetch failed", zap.Error(err))
		}
		return
	}

	// Liveness guard: a response that arrives after Stop belongs to a
	// screen that no longer exists.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || ctx.Err() != nil {
		return
	}
	p.Apply(result)
}

// Stop cancels the loop and guarantees Apply is never called again. It is
// idempotent and waits for the loop goroutine to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
