package job

import (
	"sync"
	"sync/atomic"
)

// Stopper is a polled stop flag with a channel that wakes sleepers.
type Stopper struct {
	stopped atomic.Bool
	done    chan struct{}
	once    sync.Once
}

func NewStopper() *Stopper {
	return &Stopper{done: make(chan struct{})}
}

// Stop sets the flag. It is safe to call more than once.
func (s *Stopper) Stop() {
	s.once.Do(func() {
		s.stopped.Store(true)
		close(s.done)
	})
}

func (s *Stopper) Stopped() bool {
	return s.stopped.Load()
}

// Done is closed by the first Stop.
func (s *Stopper) Done() <-chan struct{} {
	return s.done
}
