package browser

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// throttler spaces navigations out by a minimum interval across all
// sessions. Each waiter reserves the next slot under the lock and then
// sleeps outside it, so concurrent waiters line up instead of racing.
type throttler struct {
	interval time.Duration

	mu sync.Mutex
	// next is the earliest time the next navigation may start.
	next time.Time
}

// newThrottler returns nil when the interval is not positive; a nil
// throttler allows every navigation immediately.
func newThrottler(interval time.Duration) *throttler {
	if interval <= 0 {
		return nil
	}

	return &throttler{interval: interval}
}

// Wait blocks until this caller's reserved slot arrives or ctx is done.
func (t *throttler) Wait(ctx context.Context) error {
	if t == nil {
		return nil
	}

	t.mu.Lock()
	now := time.Now()
	at := t.next
	if at.Before(now) {
		at = now
	}
	t.next = at.Add(t.interval)
	t.mu.Unlock()

	delay := time.Until(at)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for navigation slot: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
