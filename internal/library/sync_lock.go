package library

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var ErrSyncLocked = errors.New("library: another sync of this library is running")

// SyncLock keeps two processes on this host from syncing into the same
// library at once, which would create duplicate folders and files.
type SyncLock struct {
	flock *flock.Flock
}

// NewSyncLock returns the lock for libraryName on endpoint. The lock file lives in dir.
func NewSyncLock(dir, endpoint, libraryName string) *SyncLock {
	sum := sha256.Sum256([]byte(endpoint + "\x00" + libraryName))
	name := hex.EncodeToString(sum[:8]) + ".lock"
	return &SyncLock{flock: flock.New(filepath.Join(dir, name))}
}

func (l *SyncLock) Path() string {
	return l.flock.Path()
}

// Lock takes the lock without waiting. It returns ErrSyncLocked when another process holds it.
func (l *SyncLock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(l.flock.Path()), 0o755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}

	locked, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", l.flock.Path(), err)
	}
	if !locked {
		return ErrSyncLocked
	}
	return nil
}

// Unlock releases the lock and removes its file. It does nothing if the lock is not held.
func (l *SyncLock) Unlock() error {
	if !l.flock.Locked() {
		return nil
	}

	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.flock.Path(), err)
	}
	return os.Remove(l.flock.Path())
}
