package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// errCritical is a stop marker for repeater, matched through criticalError.Is
var errCritical = errors.New("critical database error")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error { return e.err }

func (e *criticalError) Is(target error) bool { return target == errCritical } //nolint:errorlint // marker match

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// retryPolicy holds backoff settings for write operations
type retryPolicy struct {
	attempts int
	initial  time.Duration
	maxDelay time.Duration
}

func newRetryPolicy(attempts int, initial, maxDelay time.Duration) retryPolicy {
	if attempts <= 0 {
		attempts = 5
	}
	if initial <= 0 {
		initial = 50 * time.Millisecond
	}
	if maxDelay <= 0 {
		maxDelay = 2 * time.Second
	}
	return retryPolicy{attempts: attempts, initial: initial, maxDelay: maxDelay}
}

// do runs fn with backoff, retrying lock errors only.
// fn must wrap non-lock errors in criticalError.
func (p retryPolicy) do(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(p.attempts, p.initial, repeater.WithMaxDelay(p.maxDelay))
	err := retrier.Do(ctx, fn, errCritical)
	var ce *criticalError
	if errors.As(err, &ce) {
		return ce.err
	}
	return err
}
