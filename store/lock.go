package store

import (
	"fmt"

	"github.com/gofrs/flock"
)

const lockSuffix = ".lock"

// locker serializes access to the data file across processes.
type locker interface {
	Lock() error
	Unlock() error
}

// fileLock wraps an advisory flock on "<data file>.lock". The data file itself
// is replaced by rename on every save, so it cannot carry the lock.
type fileLock struct {
	flk *flock.Flock
}

func newFileLock(dataPath string) *fileLock {
	return &fileLock{flk: flock.New(dataPath + lockSuffix)}
}

func (l *fileLock) Lock() error {
	locked, err := l.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", l.flk.Path(), err)
	}
	if !locked {
		// Another process holds it; wait for it rather than fail the operation.
		if err := l.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking lock %s: %w", l.flk.Path(), err)
		}
	}
	return nil
}

func (l *fileLock) Unlock() error {
	return l.flk.Unlock()
}

// nopLock is used for in-memory filesystems and when locking is disabled.
type nopLock struct{}

func (nopLock) Lock() error   { return nil }
func (nopLock) Unlock() error { return nil }
