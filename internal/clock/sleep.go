// Package clock provides the chain time source and context-aware waiting.
package clock

import (
	"context"
	"time"
)

var wall = New()

// SleepWithContext waits for d on the wall clock or returns early if ctx is done.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	return Sleep(ctx, wall, d)
}

// Sleep waits for d on c or returns early if ctx is done.
func Sleep(ctx context.Context, c Clock, d time.Duration) error {
	timer := c.Timer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Sleeper binds Sleep to c.
func Sleeper(c Clock) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		return Sleep(ctx, c, d)
	}
}
