package event

import (
	"context"
	"time"
)

// Refresher periodically invokes a refresh function.
//
// Subscription-based invalidation through the Bus is the primary mechanism
// for keeping views current; the Refresher exists only as the documented
// fallback for state changed outside this process (the original platform
// polled for exactly that reason). It is off unless wired with a positive
// interval.
type Refresher struct {
	interval time.Duration
	fn       func(context.Context)
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRefresher builds a refresher that calls fn every interval.
// An interval <= 0 yields a refresher whose Start is a no-op.
func NewRefresher(interval time.Duration, fn func(context.Context)) *Refresher {
	return &Refresher{interval: interval, fn: fn}
}

// Start begins the periodic calls. It returns immediately; the ticker runs
// on its own goroutine until Stop is called or ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.fn(ctx)
			}
		}
	}()
}

// Stop halts the ticker and waits for the goroutine to exit.
func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}
