package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MonthlyFile is an io.Writer appending to <dir>/<prefix>_YYYYMM.log. The
// file is reopened when the month changes in loc.
type MonthlyFile struct {
	dir    string
	prefix string
	loc    *time.Location
	now    func() time.Time

	mu    sync.Mutex
	month string
	file  *os.File
}

// NewMonthlyFile creates dir if needed. No file is opened until the first write.
func NewMonthlyFile(dir, prefix string, loc *time.Location) (*MonthlyFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}
	return &MonthlyFile{
		dir:    dir,
		prefix: prefix,
		loc:    loc,
		now:    time.Now,
	}, nil
}

// Path returns the file the next write at t goes to.
func (m *MonthlyFile) Path(t time.Time) string {
	return filepath.Join(m.dir, fmt.Sprintf("%s_%s.log", m.prefix, t.In(m.loc).Format("200601")))
}

func (m *MonthlyFile) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	month := now.In(m.loc).Format("200601")
	if m.file == nil || month != m.month {
		if m.file != nil {
			_ = m.file.Close()
			m.file = nil
		}
		f, err := os.OpenFile(m.Path(now), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return 0, err
		}
		m.file = f
		m.month = month
	}
	return m.file.Write(p)
}

// Close closes the current file, if any.
func (m *MonthlyFile) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.file == nil {
		return nil
	}
	err := m.file.Close()
	m.file = nil
	return err
}
