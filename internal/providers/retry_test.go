package providers

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicy_ExhaustsAfterMaxAttempts(t *testing.T) {
	var waits []time.Duration
	p := RetryPolicy{
		MaxAttempts: 5,
		Backoff:     func(int) time.Duration { return 0 },
		OnRetry: func(attempt int, wait time.Duration, err error) {
			waits = append(waits, wait)
		},
	}

	calls := 0
	err := p.Do(context.Background(), func() error {
		calls++
		return &RateLimitError{Provider: "openai"}
	})

	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
	if len(waits) != 4 {
		t.Errorf("waited %d times, want 4 (no wait after the last attempt)", len(waits))
	}
	var ex *ExhaustedError
	if !errors.As(err, &ex) {
		t.Fatalf("expected *ExhaustedError, got %T: %v", err, err)
	}
	if ex.Attempts != 5 {
		t.Errorf("Attempts = %d, want 5", ex.Attempts)
	}
	if !IsRateLimit(err) {
		t.Error("ExhaustedError should unwrap to the last rate limit error")
	}
}

func TestRetryPolicy_SucceedsAfterRetries(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 5, Backoff: func(int) time.Duration { return 0 }}

	calls := 0
	err := p.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &RateLimitError{}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryPolicy_NonRetryablePropagates(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"auth", &AuthError{Message: "bad key"}},
		{"server", &ServerError{StatusCode: 500}},
		{"plain", errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := RetryPolicy{MaxAttempts: 5, Backoff: func(int) time.Duration { return 0 }}
			calls := 0
			err := p.Do(context.Background(), func() error {
				calls++
				return tt.err
			})
			if calls != 1 {
				t.Errorf("calls = %d, want 1", calls)
			}
			if err != tt.err {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestRetryPolicy_CustomRetryable(t *testing.T) {
	p := RetryPolicy{
		MaxAttempts: 3,
		Retryable: func(err error) bool {
			var se *ServerError
			return errors.As(err, &se)
		},
	}
	calls := 0
	p.Do(context.Background(), func() error {
		calls++
		return &ServerError{StatusCode: 502}
	})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryPolicy_ContextCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := RetryPolicy{
		MaxAttempts: 5,
		Backoff:     func(int) time.Duration { return time.Hour },
		OnRetry:     func(int, time.Duration, error) { cancel() },
	}

	calls := 0
	err := p.Do(ctx, func() error {
		calls++
		return &RateLimitError{}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestLinearBackoff(t *testing.T) {
	b := LinearBackoff(2 * time.Second)
	want := []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second, 8 * time.Second}
	for i, w := range want {
		if got := b(i + 1); got != w {
			t.Errorf("attempt %d: got %v, want %v", i+1, got, w)
		}
	}
}

func TestExponentialBackoff(t *testing.T) {
	b := ExponentialBackoff(2 * time.Second)
	want := []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}
	for i, w := range want {
		if got := b(i + 1); got != w {
			t.Errorf("attempt %d: got %v, want %v", i+1, got, w)
		}
	}
}

func TestBackoffByName(t *testing.T) {
	for _, name := range []string{"", "linear", "exponential"} {
		if _, err := BackoffByName(name, time.Second); err != nil {
			t.Errorf("BackoffByName(%q) error: %v", name, err)
		}
	}
	if _, err := BackoffByName("fibonacci", time.Second); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	if p.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", p.MaxAttempts)
	}
	if p.Backoff(3) != 6*time.Second {
		t.Errorf("Backoff(3) = %v, want 6s", p.Backoff(3))
	}
}
