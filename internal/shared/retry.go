package shared

import (
	"math/rand"
	"time"
)

// RetryPolicy re-invokes a failing operation with exponential backoff and
// jitter. The delay before retry n is BaseDelay * 2^(n-1), scaled by a
// jitter factor drawn uniformly from [0.8, 1.2] to avoid thundering herds.
//
// The policy knows nothing about what it wraps; adapters stay free of retry
// logic and callers compose the two.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Retryable  func(error) bool

	// Overridable for tests.
	Sleep  func(time.Duration)
	Jitter func() float64
}

// DefaultRetryPolicy matches the external catalogs' usage policies.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		Retryable:  IsTransient,
	}
}

// Do invokes fn, retrying errors the policy considers retryable. A
// non-retryable error is returned immediately; once MaxRetries retries are
// exhausted the last error is returned unchanged.
func (p RetryPolicy) Do(fn func() error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	jitter := p.Jitter
	if jitter == nil {
		jitter = func() float64 { return 0.8 + 0.4*rand.Float64() }
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}

	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !retryable(err) || attempt >= p.MaxRetries {
			return err
		}
		delay := time.Duration(float64(p.BaseDelay) * float64(uint64(1)<<uint(attempt)) * jitter())
		sleep(delay)
	}
}
