package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrBackend is wrapped by every transient Redis or MongoDB failure.
var ErrBackend = errors.New("store backend unavailable")

const (
	retryAttempts = 3
	retryDelay    = 100 * time.Millisecond
)

// unavailable marks a failure that may go away on the next attempt.
type unavailable struct{ err error }

func (u *unavailable) Error() string { return fmt.Sprintf("%v: %v", ErrBackend, u.err) }

func (u *unavailable) Unwrap() []error { return []error{ErrBackend, u.err} }

// Unavailable wraps err as a transient backend failure. It returns nil for
// a nil err.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return &unavailable{err: err}
}

// IsTransient reports whether err was marked with [Unavailable].
func IsTransient(err error) bool {
	var u *unavailable
	return errors.As(err, &u)
}

// Retry calls fn until it succeeds, returns an error that is not transient,
// or has been called attempts times. The delay doubles after each failed
// attempt. A canceled ctx ends the wait with ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := range max(attempts, 1) {
		if err = fn(); err == nil || !IsTransient(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay << i):
		}
	}
	return err
}

func retry(ctx context.Context, fn func() error) error {
	return Retry(ctx, retryAttempts, retryDelay, fn)
}
