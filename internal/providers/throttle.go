package providers

import (
	"context"
	"sync"
	"time"
)

// throttle enforces a minimum interval between outbound requests so a
// single source client never exceeds upstream quotas. Calls block until
// the interval has elapsed since the previous request.
type throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{
		interval: interval,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// wait blocks until the next request is allowed or the context ends.
func (t *throttle) wait(ctx context.Context) error {
	if t == nil || t.interval <= 0 {
		return nil
	}

	t.mu.Lock()
	now := t.now()
	wait := t.interval - now.Sub(t.last)
	if wait < 0 {
		wait = 0
	}
	// Reserve the slot before sleeping so concurrent callers queue up.
	t.last = now.Add(wait)
	t.mu.Unlock()

	if wait == 0 {
		return nil
	}
	return t.sleep(ctx, wait)
}
