package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for cache operations.
var (
	// ErrBackendUnavailable indicates the cache backend could not be reached.
	ErrBackendUnavailable = errors.New("cache backend unavailable")
)

// RetryableError wraps an error that may succeed on retry.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the error is worth retrying.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const (
	retryAttempts = 3
	retryBaseWait = 100 * time.Millisecond
)

// RetryWithBackoff runs fn up to retryAttempts times with exponential backoff.
// Only retryable errors trigger a retry; other errors return immediately.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	var lastErr error
	wait := retryBaseWait

	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			wait *= 2
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsRetryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
