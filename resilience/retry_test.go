package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

type retryableErr struct{ retry bool }

func (e retryableErr) Error() string     { return "backend" }
func (e retryableErr) IsRetryable() bool { return e.retry }

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("flaky")
		}
		return "red", nil
	})
	if err != nil || got != "red" {
		t.Fatalf("got %q, %v", got, err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), fastRetry(5), func() (int, error) {
		calls++
		return 0, retryableErr{retry: false}
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestRetry_ReturnsLastError(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastRetry(2)
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) { retried = append(retried, attempt) }
	_, err := Retry(context.Background(), cfg, func() (int, error) {
		calls++
		return 0, retryableErr{retry: true}
	})
	if !errors.As(err, new(retryableErr)) {
		t.Errorf("expected last error, got %v", err)
	}
	if calls != 2 || len(retried) != 1 {
		t.Errorf("calls=%d retried=%v", calls, retried)
	}
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := Retry(ctx, fastRetry(3), func() (int, error) { calls++; return 0, nil })
	if !errors.Is(err, context.Canceled) || calls != 0 {
		t.Errorf("expected canceled without calls, got %v after %d", err, calls)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"plain", errors.New("x"), true},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"open circuit", ErrCircuitOpen, false},
		{"retryable", retryableErr{retry: true}, true},
		{"not retryable", retryableErr{retry: false}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DefaultRetryIf(tc.err); got != tc.want {
				t.Errorf("DefaultRetryIf = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBackoffCapped(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, BackoffFactor: 10}.withDefaults()
	if d := cfg.backoff(1); d != time.Second {
		t.Errorf("first backoff = %v", d)
	}
	if d := cfg.backoff(4); d != 3*time.Second {
		t.Errorf("expected cap, got %v", d)
	}
}
