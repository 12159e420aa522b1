package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrRateLimit indicates that a remote service asked us to slow down.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryOptions configures retry behavior for operations. Zero fields take
// the defaults of 3 attempts, 100ms initial delay, 5s max delay and a
// multiplier of 2.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = 100 * time.Millisecond
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = 5 * time.Second
	}
	if o.Multiplier <= 0 {
		o.Multiplier = 2.0
	}
	return o
}

// backoff returns the wait before the next attempt.
func (o RetryOptions) backoff(current time.Duration, err error) time.Duration {
	if errors.Is(err, ErrRateLimit) {
		return o.MaxDelay
	}
	return min(current, o.MaxDelay)
}

// RetryableError marks an error as retryable or permanent. Errors that are
// not wrapped in a RetryableError are retried.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent reports whether err was explicitly marked as not retryable.
func Permanent(err error) bool {
	var re *RetryableError
	return errors.As(err, &re) && !re.Retryable
}

// WithRetry runs operation until it succeeds, returns a permanent error, ctx
// is canceled or the attempts run out. Exhaustion wraps both ErrMaxRetries
// and the last error.
func WithRetry(ctx context.Context, operation func() error, opts RetryOptions) error {
	opts = opts.withDefaults()
	next := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		if Permanent(err) {
			return err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, opts.MaxAttempts, err)
		}

		wait := opts.backoff(next, err)
		slog.Warn("Operation failed, retrying",
			"attempt", attempt,
			"max_attempts", opts.MaxAttempts,
			"delay", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		next = time.Duration(float64(wait) * opts.Multiplier)
	}
}
