// Package utils holds small shared helpers.
package utils

import (
	"context"
	"time"
)

// Stubbed in tests.
var sleep = time.Sleep

// WaitFor sleeps for the given duration, returning early with the context's
// error when it is cancelled. Used between retry attempts so a cancelled run
// does not sit out its backoff.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
