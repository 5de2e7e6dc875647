package fs

import (
	"errors"
	iofs "io/fs"
	"syscall"
)

// helpers for classifying filesystem errors.
// isTransient decides whether an operation should retry or fail immediately.

func isTransient(err error) bool {
	if errors.Is(err, syscall.EAGAIN) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.EINTR) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	// extend here for network filesystem specific errors if needed
	return false
}

// IsNotExist reports whether err means the path is already gone.
func IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}
