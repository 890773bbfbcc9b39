package repository

import (
	"errors"
	"strings"
)

// errNoRetry is passed to repeater to stop on critical errors
var errNoRetry = errors.New("no retry")

// criticalError wraps an error to signal repeater to stop retrying
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// Is matches errNoRetry, so repeater stops on any critical error
func (e *criticalError) Is(target error) bool {
	return target == errNoRetry //nolint:errorlint // sentinel identity
}

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

// classify keeps lock errors retryable and marks everything else critical
func classify(err error) error {
	if err == nil || isLockError(err) {
		return err // repeater will retry lock errors
	}
	return &criticalError{err: err}
}
