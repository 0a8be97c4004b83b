package providers

import (
	"context"
	"fmt"
	"time"
)

// BackoffFunc returns how long to wait after the given failed attempt
// (1-based) before trying again.
type BackoffFunc func(attempt int) time.Duration

// LinearBackoff waits base*attempt: 2s, 4s, 6s, ... for a 2s base.
func LinearBackoff(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// ExponentialBackoff waits base*2^(attempt-1): 2s, 4s, 8s, ... for a 2s base.
func ExponentialBackoff(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		return base * time.Duration(1<<uint(attempt-1))
	}
}

// BackoffByName resolves "linear" or "exponential".
func BackoffByName(name string, base time.Duration) (BackoffFunc, error) {
	switch name {
	case "", "linear":
		return LinearBackoff(base), nil
	case "exponential":
		return ExponentialBackoff(base), nil
	default:
		return nil, fmt.Errorf("unknown backoff strategy: %s", name)
	}
}

// ExhaustedError is returned when every attempt failed with a retryable error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// RetryPolicy decides how often and how patiently a call is retried.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     BackoffFunc
	// Retryable reports whether err warrants another attempt.
	// Defaults to IsRateLimit.
	Retryable func(error) bool
	// OnRetry is called before each wait.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// DefaultRetryPolicy retries rate limits five times with a linear 2s backoff.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		Backoff:     LinearBackoff(2 * time.Second),
		Retryable:   IsRateLimit,
	}
}

// Do calls fn until it succeeds, fails with a non-retryable error, or
// MaxAttempts calls have been made. There is no wait after the last attempt.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRateLimit
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}

		var wait time.Duration
		if p.Backoff != nil {
			wait = p.Backoff(attempt)
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, wait, lastErr)
		}
		if wait <= 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return &ExhaustedError{Attempts: maxAttempts, Last: lastErr}
}
