// ABOUTME: Opt-in retry logic with exponential backoff and jitter for the GraphQL transport.
// ABOUTME: Disabled unless a RetryPolicy is set on the Client; the object model never retries.
package graphql

import (
	"context"
	"encoding/json"
	"math"
	"math/rand/v2"
	"time"
)

// RetryPolicy configures retry behavior for transport-level failures.
type RetryPolicy struct {
	// MaxRetries is the maximum number of retry attempts (not counting the initial call).
	MaxRetries int

	// BaseDelay is the initial delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay is the upper bound on the delay between retries.
	MaxDelay time.Duration

	// BackoffMultiplier controls exponential growth of the delay between retries.
	BackoffMultiplier float64

	// Jitter adds randomness to the delay to avoid thundering herd problems.
	Jitter bool

	// OnRetry is an optional callback invoked before each retry attempt.
	OnRetry func(err error, attempt int, delay time.Duration)
}

// DefaultRetryPolicy returns a RetryPolicy with sensible defaults:
// 2 retries, 1s base delay, 60s max delay, 2x backoff, jitter enabled.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        2,
		BaseDelay:         time.Second,
		MaxDelay:          60 * time.Second,
		BackoffMultiplier: 2.0,
		Jitter:            true,
	}
}

// CalculateDelay computes the delay for a given retry attempt using exponential
// backoff, capped at MaxDelay. When Jitter is enabled the delay is randomized
// between 0 and the calculated backoff value.
func (p RetryPolicy) CalculateDelay(attempt int) time.Duration {
	delayFloat := float64(p.BaseDelay) * math.Pow(p.BackoffMultiplier, float64(attempt))
	if delayFloat > float64(p.MaxDelay) {
		delayFloat = float64(p.MaxDelay)
	}

	delay := time.Duration(delayFloat)
	if p.Jitter {
		delay = time.Duration(rand.Int64N(int64(delay) + 1))
	}
	return delay
}

// ShouldRetry determines whether the operation should be retried. Only errors
// implementing IsRetryable (rate limiting, server faults) qualify.
func (p RetryPolicy) ShouldRetry(err error, attempt int) bool {
	if err == nil {
		return false
	}
	if attempt >= p.MaxRetries {
		return false
	}

	type retryable interface {
		IsRetryable() bool
	}
	if r, ok := err.(retryable); ok {
		return r.IsRetryable()
	}
	return false
}

// Retry executes fn under the given policy, retrying retryable errors up to
// MaxRetries times with exponential backoff. The context cancels retries early.
func Retry(ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	var (
		data    json.RawMessage
		lastErr error
	)

	for attempt := 0; ; attempt++ {
		data, lastErr = fn(ctx)
		if lastErr == nil {
			return data, nil
		}

		if !policy.ShouldRetry(lastErr, attempt) {
			return nil, lastErr
		}

		delay := policy.CalculateDelay(attempt)
		if policy.OnRetry != nil {
			policy.OnRetry(lastErr, attempt, delay)
		}

		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(delay):
		}
	}
}
