// Package retry implements a caller-side retry policy for VeilMail calls.
// The client itself never retries; tools built on it opt in here.
package retry

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/Resonia-Health/veilmail-go/internal/apierrors"
)

// Config configures retry behavior for failed API calls.
type Config struct {
	// MaxRetries is the maximum number of retry attempts.
	MaxRetries int
	// BaseDelay is the initial delay between retry attempts.
	BaseDelay time.Duration
	// MaxDelay caps both computed backoff and server-provided Retry-After.
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay increases after each attempt.
	Multiplier float64
	// Jitter is the randomization factor (0.0 to 1.0) added to delays.
	Jitter float64
	// RetryableOn determines if an error should trigger a retry.
	RetryableOn func(err error) bool
}

// DefaultConfig returns the default retry configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:  3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
		Multiplier:  2.0,
		Jitter:      0.2,
		RetryableOn: IsRetryable,
	}
}

// IsRetryable reports whether err is a rate-limit, server, network or
// timeout failure.
func IsRetryable(err error) bool {
	apiErr, ok := apierrors.As(err)
	return ok && apiErr.Retryable()
}

// ShouldRetry determines if a call should be retried.
func (c *Config) ShouldRetry(attempt int, err error) bool {
	if err == nil || attempt >= c.MaxRetries {
		return false
	}
	retryable := c.RetryableOn
	if retryable == nil {
		retryable = IsRetryable
	}
	return retryable(err)
}

// Delay calculates the delay before the next attempt. A Retry-After value
// from a rate-limit error takes precedence over computed backoff.
func (c *Config) Delay(attempt int, err error) time.Duration {
	if apiErr, ok := apierrors.As(err); ok && apiErr.Kind == apierrors.KindRateLimited && apiErr.RetryAfter > 0 {
		if c.MaxDelay > 0 && apiErr.RetryAfter > c.MaxDelay {
			return c.MaxDelay
		}
		return apiErr.RetryAfter
	}

	delay := float64(c.BaseDelay) * math.Pow(c.Multiplier, float64(attempt))
	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	if c.Jitter > 0 {
		jitterAmount := delay * c.Jitter
		delay = delay - jitterAmount + (rand.Float64() * 2 * jitterAmount)
	}

	return time.Duration(delay)
}

// Wait waits for the appropriate delay before retrying.
func (c *Config) Wait(ctx context.Context, attempt int, err error) error {
	timer := time.NewTimer(c.Delay(attempt, err))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs fn until it succeeds, returns a non-retryable error, or the retry
// budget is exhausted. The last error is returned unmodified.
func Do(ctx context.Context, cfg *Config, fn func(ctx context.Context) error) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if !cfg.ShouldRetry(attempt, err) {
			return err
		}
		if werr := cfg.Wait(ctx, attempt, err); werr != nil {
			return err
		}
	}
}
