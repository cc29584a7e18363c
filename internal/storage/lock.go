package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const lockFileName = "planbook.lock"

// ErrLocked is returned when another live planbook process holds the data
// directory.
var ErrLocked = errors.New("data directory is in use by another planbook process")

// DirLock guards a data directory against concurrent planbook processes with
// a PID file.
type DirLock struct {
	path string
}

// NewDirLock creates a lock for the given data directory.
func NewDirLock(dataDir string) *DirLock {
	return &DirLock{path: filepath.Join(dataDir, lockFileName)}
}

// Path returns the lock file location.
func (l *DirLock) Path() string { return l.path }

// Acquire takes the lock, reclaiming it once if the recorded process is gone
// or the file does not hold a PID.
func (l *DirLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	err := l.create()
	if err == nil || !os.IsExist(err) {
		return err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("failed to read lock file: %w", err)
	}
	if pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data))); parseErr == nil && processExists(pid) {
		return fmt.Errorf("%w (PID %d)", ErrLocked, pid)
	}

	// Stale or garbled lock: remove it and try exactly once more.
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale lock file: %w", err)
	}
	if err := l.create(); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w (taken during retry)", ErrLocked)
		}
		return err
	}
	return nil
}

// create publishes a lock file holding our PID. The PID is written to a
// temp file first and hard-linked into place, so the lock never exists
// without its content. An os.IsExist error is returned as is.
func (l *DirLock) create() error {
	tmp, err := os.CreateTemp(filepath.Dir(l.path), lockFileName+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, writeErr := fmt.Fprintf(tmp, "%d", os.Getpid())
	closeErr := tmp.Close()
	if writeErr != nil {
		return fmt.Errorf("failed to write lock file: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to write lock file: %w", closeErr)
	}

	if err := os.Link(tmp.Name(), l.path); err != nil {
		if os.IsExist(err) {
			return err
		}
		return fmt.Errorf("failed to create lock file: %w", err)
	}
	return nil
}

// Release removes the lock file. Releasing an unheld lock is not an error.
func (l *DirLock) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// processExists reports whether pid is alive, using signal 0.
func processExists(pid int) bool {
	if pid == os.Getpid() {
		return true
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
