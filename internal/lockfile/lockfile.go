// Copyright Electionwire Media, 2026. All rights reserved.

// Package lockfile guards against overlapping automation runs with an
// exclusive-create lock file. A held lock is an expected condition, not a
// failure: the caller skips the run cleanly.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrHeld reports that another run holds the lock.
var ErrHeld = errors.New("lock held by another run")

// Lock is a held lock file.
type Lock struct {
	path string
}

// Acquire takes the lock at path. A lock older than staleAge is assumed
// to be left over from a crashed run and is broken. Returns ErrHeld
// (wrapped) when a live lock exists.
func Acquire(path string, staleAge time.Duration) (*Lock, error) {
	if staleAge <= 0 {
		staleAge = 2 * time.Hour
	}

	if info, err := os.Stat(path); err == nil {
		age := time.Since(info.ModTime())
		if age <= staleAge {
			return nil, fmt.Errorf("%w: %s (age %s)", ErrHeld, path, age.Round(time.Second))
		}
		// Stale lock from a crashed run.
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("removing stale lock %s: %w", path, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrHeld, path)
		}
		return nil, fmt.Errorf("creating lock %s: %w", path, err)
	}

	fmt.Fprintf(f, "pid=%d started=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing lock %s: %w", path, err)
	}

	return &Lock{path: path}, nil
}

// Release removes the lock file. Safe to call more than once.
func (l *Lock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock %s: %w", l.path, err)
	}
	return nil
}
