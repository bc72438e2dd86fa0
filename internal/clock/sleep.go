// Package clock supplies cancelable time primitives for retry loops.
package clock

import (
	"context"
	"time"
)

// SleepWithContext blocks for d, returning early with the context error if
// ctx is canceled first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
