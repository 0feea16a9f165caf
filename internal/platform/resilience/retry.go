package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// RetryPolicy retries immediately unless Delay is set.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	// OnFailure observes every failed attempt, including the last one.
	OnFailure func(attempt int, err error)
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3}
}

// ExhaustedError is returned once every attempt failed.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// IsPermanent reports errors that must not be retried: programming faults
// raised as assertion failures and context cancellation.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	return errors.IsAssertionFailure(err) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Retry invokes fn up to policy.MaxAttempts times and returns the number of
// attempts made. Permanent errors are returned as-is after the attempt that
// produced them.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) error) (int, error) {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return attempt, nil
		}
		lastErr = err
		if policy.OnFailure != nil {
			policy.OnFailure(attempt, err)
		}
		if IsPermanent(err) {
			return attempt, err
		}
		if attempt == policy.MaxAttempts {
			break
		}
		if err := waitDelay(ctx, policy.Delay); err != nil {
			return attempt, err
		}
	}

	return policy.MaxAttempts, &ExhaustedError{Attempts: policy.MaxAttempts, Err: lastErr}
}

func waitDelay(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
