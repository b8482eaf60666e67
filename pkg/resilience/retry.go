// Package resilience retries transient connection failures with a fixed
// backoff. Only connect-stage errors are retried; protocol and request
// errors fail immediately.
package resilience

import (
	"context"
	"time"

	"github.com/azspeech/azspeech/pkg/errorsx"
)

// RetryPolicy defines how connection attempts are retried.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// NewRetryPolicy clamps non-positive values to sane defaults.
func NewRetryPolicy(maxRetries int, backoff time.Duration) RetryPolicy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoff <= 0 {
		backoff = 500 * time.Millisecond
	}
	return RetryPolicy{MaxRetries: maxRetries, Backoff: backoff}
}

// Do runs fn until it succeeds, returns a non-retryable error, the retry
// budget is spent, or ctx is cancelled.
func (r RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !errorsx.HasKind(err, errorsx.KindConnect) || attempt == r.MaxRetries {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(r.Backoff):
		}
	}
}
