package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/Yaz-U/ai-news-daily/domain"
)

const RunLockFileName = ".run.lock"

// RunLock is an exclusive, non-blocking flock on the data directory. The
// kernel releases it when the holding process exits.
type RunLock struct {
	path string
	file *os.File
}

func NewRunLock(dataDir string) *RunLock {
	return &RunLock{path: filepath.Join(dataDir, RunLockFileName)}
}

// Acquire returns domain.ErrRunInProgress when another process holds the lock.
func (l *RunLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return domain.ErrRunInProgress
		}
		return fmt.Errorf("acquire lock: %w", err)
	}

	// holder info for operators; not read back
	_ = f.Truncate(0)
	_, _ = f.WriteAt([]byte(strconv.Itoa(os.Getpid())+" "+time.Now().Format(time.RFC3339)+"\n"), 0)

	l.file = f
	return nil
}

// Release drops the lock. Calling it without holding the lock is a no-op.
func (l *RunLock) Release() error {
	if l.file == nil {
		return nil
	}
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close lock file: %w", err)
	}
	l.file = nil
	return nil
}
