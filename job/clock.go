package job

import "time"

// Clock abstracts time for the wait loop.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// waitUntil sleeps toward target in chunks of at most chunk and re-reads the
// clock after each one, so suspend or clock steps only delay the wake by one
// chunk. It returns false when stopped first.
func waitUntil(clock Clock, stopper *Stopper, target time.Time, chunk time.Duration) bool {
	for {
		if stopper.Stopped() {
			return false
		}
		// target carries no monotonic reading, so this is wall-clock time
		remaining := target.Sub(clock.Now())
		if remaining <= 0 {
			return true
		}

		select {
		case <-clock.After(min(remaining, chunk)):
		case <-stopper.Done():
			return false
		}
	}
}
