package job

import (
	"sync"
	"time"
)

// RunRecord is the last finished run as shown on the status surface.
type RunRecord struct {
	Trigger   string        `json:"trigger"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	ExitCode  int           `json:"exit_code"`
	Error     string        `json:"error,omitempty"`
}

// StatusView is a point-in-time copy of Status.
type StatusView struct {
	StartedAt   time.Time  `json:"started_at"`
	Running     bool       `json:"running"`
	NextTrigger *time.Time `json:"next_trigger,omitempty"`
	LastRun     *RunRecord `json:"last_run,omitempty"`
	Runs        int        `json:"runs"`
	Failures    int        `json:"failures"`
	Skipped     int        `json:"skipped_triggers"`
}

// Status is shared between the loop and the HTTP surface.
type Status struct {
	mu   sync.RWMutex
	view StatusView
}

func NewStatus(startedAt time.Time) *Status {
	return &Status{view: StatusView{StartedAt: startedAt}}
}

func (s *Status) setNext(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.NextTrigger = &t
}

func (s *Status) setRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Running = running
}

func (s *Status) recordRun(rec RunRecord, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.LastRun = &rec
	s.view.Runs++
	if failed {
		s.view.Failures++
	}
}

func (s *Status) addSkipped(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Skipped += n
}

// View returns a copy safe to serialize.
func (s *Status) View() StatusView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.view
	if v.NextTrigger != nil {
		next := *v.NextTrigger
		v.NextTrigger = &next
	}
	if v.LastRun != nil {
		last := *v.LastRun
		v.LastRun = &last
	}
	return v
}
