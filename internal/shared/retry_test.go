package shared

import (
	"errors"
	"net"
	"net/http"
	"testing"
	"time"
)

func fixedJitter(p *RetryPolicy, factor float64) {
	p.Jitter = func() float64 { return factor }
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	var slept []time.Duration
	policy := RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  10 * time.Millisecond,
		Retryable:  IsTransient,
		Sleep:      func(d time.Duration) { slept = append(slept, d) },
	}
	fixedJitter(&policy, 1.0)

	attempts := 0
	err := policy.Do(func() error {
		attempts++
		if attempts < 3 {
			return &HTTPError{StatusCode: http.StatusServiceUnavailable, Status: "Service Unavailable"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}
	if len(slept) != len(want) {
		t.Fatalf("expected %d sleeps, got %d", len(want), len(slept))
	}
	for i := range want {
		if slept[i] != want[i] {
			t.Errorf("sleep %d = %v, want %v", i, slept[i], want[i])
		}
	}
}

func TestRetryExhaustionReturnsLastError(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		Retryable:  func(error) bool { return true },
		Sleep:      func(time.Duration) {},
	}
	fixedJitter(&policy, 1.0)

	lastErr := &HTTPError{StatusCode: http.StatusBadGateway, Status: "Bad Gateway"}
	attempts := 0
	err := policy.Do(func() error {
		attempts++
		return lastErr
	})
	if attempts != 3 {
		t.Errorf("expected 1 attempt + 2 retries, got %d attempts", attempts)
	}
	if !errors.Is(err, lastErr) {
		t.Errorf("expected the last error unchanged, got %v", err)
	}
}

func TestRetryDoesNotRetryNotFound(t *testing.T) {
	policy := DefaultRetryPolicy()
	policy.Sleep = func(time.Duration) { t.Fatal("should not sleep for a non-retryable error") }

	attempts := 0
	err := policy.Do(func() error {
		attempts++
		return ErrNotFound
	})
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRetryJitterScalesDelay(t *testing.T) {
	for _, factor := range []float64{0.8, 1.2} {
		var slept []time.Duration
		policy := RetryPolicy{
			MaxRetries: 1,
			BaseDelay:  100 * time.Millisecond,
			Retryable:  func(error) bool { return true },
			Sleep:      func(d time.Duration) { slept = append(slept, d) },
		}
		fixedJitter(&policy, factor)

		calls := 0
		_ = policy.Do(func() error {
			calls++
			if calls == 1 {
				return errors.New("flaky")
			}
			return nil
		})
		want := time.Duration(float64(100*time.Millisecond) * factor)
		if len(slept) != 1 || slept[0] != want {
			t.Errorf("jitter %v: slept %v, want [%v]", factor, slept, want)
		}
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", ErrNotFound, false},
		{"429", &HTTPError{StatusCode: http.StatusTooManyRequests}, true},
		{"500", &HTTPError{StatusCode: http.StatusInternalServerError}, true},
		{"503", &HTTPError{StatusCode: http.StatusServiceUnavailable}, true},
		{"504", &HTTPError{StatusCode: http.StatusGatewayTimeout}, true},
		{"400", &HTTPError{StatusCode: http.StatusBadRequest}, false},
		{"401", &HTTPError{StatusCode: http.StatusUnauthorized}, false},
		{"net timeout", &net.DNSError{IsTimeout: true}, true},
		{"plain", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsTransient(tc.err); got != tc.want {
			t.Errorf("%s: IsTransient = %v, want %v", tc.name, got, tc.want)
		}
	}
}
