package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend is wrapped around transport failures of a remote cache.
var ErrBackend = errors.New("cache backend unavailable")

// RetryableError marks an error as transient.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryAttempts bounds how often a transient failure is retried.
const retryAttempts = 3

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable
// error or retryAttempts is exhausted. The delay doubles after each attempt.
func RetryWithBackoff(ctx context.Context, delay time.Duration, fn func() error) error {
	var lastErr error
	for i := 0; i < retryAttempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
		if i == retryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}
