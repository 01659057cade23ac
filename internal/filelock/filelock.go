// Package filelock provides advisory file locking used to serialize
// mutations of the space config, in particular task ID allocation.
package filelock

import (
	"fmt"
	"os"
)

const lockFileMode = 0o600

// Acquire takes an exclusive advisory lock on the file at path, creating it
// if needed. The returned release function must be called when the critical
// section is done. Callers block until the lock becomes available.
func Acquire(path string) (release func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file lives inside the space dir
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquiring lock: %w", err)
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}

// WithLock runs fn while holding the exclusive lock at path.
// The lock is released even when fn returns an error.
func WithLock(path string, fn func() error) error {
	release, err := Acquire(path)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()
	return fn()
}
