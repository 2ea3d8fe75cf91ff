package breathe

import (
	"context"
	"sync"
	"time"
)

// Sleeper blocks between ramp steps.
type Sleeper interface {
	// Sleep waits for d or until ctx is done, whichever comes first, and
	// returns ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper waits in real time.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// VirtualClock is a Sleeper that never blocks. Each Sleep advances the clock
// by d, so simulations and tests see how long a sequence would take on the
// board without waiting for it.
type VirtualClock struct {
	mu     sync.Mutex
	now    time.Duration
	sleeps int
}

func (c *VirtualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.now += d
	c.sleeps++
	c.mu.Unlock()
	return nil
}

// Elapsed is the total simulated time slept.
func (c *VirtualClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleeps is the number of Sleep calls that advanced the clock.
func (c *VirtualClock) Sleeps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sleeps
}
