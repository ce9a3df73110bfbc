package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks a cache backend that could not be reached.
var ErrNetwork = errors.New("network error")

// RetryableError marks a dial failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
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

// Backoff controls how a backend connection is retried.
type Backoff struct {
	Attempts int
	Delay    time.Duration // doubled after every failed attempt
}

// DialBackoff is used when the server connects to Redis.
var DialBackoff = Backoff{Attempts: 3, Delay: time.Second}

// Retry calls fn until it succeeds, fails without being Retryable, or the
// attempts run out. A done ctx stops it with ctx.Err().
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(1, b.Attempts)
	delay := b.Delay
	var err error
	for i := range attempts {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return err
}
