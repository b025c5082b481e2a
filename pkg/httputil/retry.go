// Package httputil retries flaky fetches against the UIUC coordinate
// server, which drops connections and serves intermittent 5xx errors
// under load.
package httputil

import (
	"context"
	"errors"
	"time"
)

// Transient marks a failure as worth retrying. The database client wraps
// connection errors and 5xx responses with it; an unwrapped error ends
// the retry loop on the spot.
type Transient struct{ Err error }

func (e *Transient) Error() string { return e.Err.Error() }
func (e *Transient) Unwrap() error { return e.Err }

// Retry runs fn until it succeeds, fails permanently, or the attempt
// budget runs out, in which case the last transient error is returned.
// The wait before each rerun starts at delay and doubles; cancelling ctx
// interrupts the wait with ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)

	var last error
	for left := attempts; ; left-- {
		err := fn()
		if err == nil {
			return nil
		}
		if !errors.As(err, new(*Transient)) {
			return err
		}
		last = err
		if left <= 1 {
			return last
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
