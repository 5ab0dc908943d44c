package utils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// StopRetry wraps an error that RetryWithBackoff should return immediately
// instead of retrying, e.g. a definitive server rejection.
type StopRetry struct {
	Err error
}

func (s *StopRetry) Error() string { return s.Err.Error() }
func (s *StopRetry) Unwrap() error { return s.Err }

// RetryWithBackoff calls fn up to maxRetries+1 times with exponential backoff.
// fn receives the current attempt number (0-indexed) and should return nil on
// success, or an error wrapped in *StopRetry to abort retrying. If the context
// is cancelled, RetryWithBackoff returns the context error immediately.
func RetryWithBackoff(ctx context.Context, maxRetries int, fn func(attempt int) error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}

		var stop *StopRetry
		if errors.As(lastErr, &stop) {
			return stop.Err
		}

		// Don't wait after the last attempt
		if attempt == maxRetries {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		backoff := time.Duration(1<<attempt) * time.Second
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
