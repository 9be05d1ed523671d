package job

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yaz-U/ai-news-daily/metrics"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClock jumps forward by the requested duration on every After call.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeRunner struct {
	clock    *fakeClock
	stopper  *Stopper
	duration time.Duration
	outcomes []RunOutcome
	starts   []time.Time
	stopAt   int
}

func (r *fakeRunner) Run(ctx context.Context) RunOutcome {
	r.starts = append(r.starts, r.clock.Now())
	r.clock.advance(r.duration)

	outcome := RunOutcome{ExitCode: 0, Duration: r.duration}
	if i := len(r.starts) - 1; i < len(r.outcomes) {
		outcome = r.outcomes[i]
	}
	if len(r.starts) >= r.stopAt {
		r.stopper.Stop()
	}
	return outcome
}

func newTestScheduler(t *testing.T, clock *fakeClock, runner *fakeRunner, runOnStart bool) (*Scheduler, *Status) {
	t.Helper()
	status := NewStatus(clock.Now())
	s := NewScheduler(defaultTriggers(t), runner, runner.stopper, status, metrics.New(),
		Options{RunOnStart: runOnStart, ChunkInterval: 5 * time.Minute}, testLogger())
	s.clock = clock
	return s, status
}

func TestWaitUntil_ChunksAndRechecks(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 3, 5, 48, 0, 0, jst)}
	target := time.Date(2025, 3, 3, 6, 0, 0, 0, jst)

	ok := waitUntil(clock, NewStopper(), target, 5*time.Minute)

	require.True(t, ok)
	assert.Equal(t, []time.Duration{5 * time.Minute, 5 * time.Minute, 2 * time.Minute}, clock.sleeps)
	assert.True(t, clock.Now().Equal(target))
}

func TestWaitUntil_Stopped(t *testing.T) {
	stopper := NewStopper()
	stopper.Stop()

	ok := waitUntil(realClock{}, stopper, time.Now().Add(time.Hour), time.Minute)

	assert.False(t, ok)
}

func TestWaitUntil_WakesOnStop(t *testing.T) {
	stopper := NewStopper()
	done := make(chan bool, 1)
	go func() {
		done <- waitUntil(realClock{}, stopper, time.Now().Add(time.Hour), time.Hour)
	}()

	stopper.Stop()

	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("waitUntil did not wake on stop")
	}
}

func TestStopper_Idempotent(t *testing.T) {
	s := NewStopper()
	assert.False(t, s.Stopped())

	s.Stop()
	s.Stop()

	assert.True(t, s.Stopped())
	select {
	case <-s.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestScheduler_ColdStartThenTriggers(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 3, 10, 0, 0, 0, jst)}
	stopper := NewStopper()
	runner := &fakeRunner{clock: clock, stopper: stopper, duration: time.Minute, stopAt: 3}
	s, status := newTestScheduler(t, clock, runner, true)

	s.Run(context.Background())

	require.Len(t, runner.starts, 3)
	assert.True(t, runner.starts[0].Equal(time.Date(2025, 3, 3, 10, 0, 0, 0, jst)))
	assert.True(t, runner.starts[1].Equal(time.Date(2025, 3, 3, 12, 0, 0, 0, jst)))
	assert.True(t, runner.starts[2].Equal(time.Date(2025, 3, 3, 16, 0, 0, 0, jst)))

	view := status.View()
	assert.Equal(t, 3, view.Runs)
	assert.Equal(t, 0, view.Failures)
	assert.False(t, view.Running)
	require.NotNil(t, view.LastRun)
	assert.Equal(t, "16:00", view.LastRun.Trigger)
}

func TestScheduler_LifecycleLoggedOnce(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 3, 10, 0, 0, 0, jst)}
	stopper := NewStopper()
	runner := &fakeRunner{clock: clock, stopper: stopper, duration: time.Minute, stopAt: 1}
	var buf bytes.Buffer
	status := NewStatus(clock.Now())
	s := NewScheduler(defaultTriggers(t), runner, stopper, status, metrics.New(),
		Options{RunOnStart: true, ChunkInterval: 5 * time.Minute}, slog.New(slog.NewTextHandler(&buf, nil)))
	s.clock = clock

	s.Run(context.Background())

	logs := buf.String()
	assert.Equal(t, 1, strings.Count(logs, `msg="scheduler started"`))
	assert.Equal(t, 1, strings.Count(logs, `msg="scheduler stopped"`))
}

func TestScheduler_FailureDoesNotStopLoop(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 3, 21, 0, 0, 0, jst)}
	stopper := NewStopper()
	runner := &fakeRunner{
		clock:    clock,
		stopper:  stopper,
		duration: time.Minute,
		stopAt:   2,
		outcomes: []RunOutcome{{ExitCode: 1, Err: errors.New("exit status 1")}},
	}
	s, status := newTestScheduler(t, clock, runner, false)

	s.Run(context.Background())

	require.Len(t, runner.starts, 2)
	assert.True(t, runner.starts[0].Equal(time.Date(2025, 3, 4, 6, 0, 0, 0, jst)))
	assert.True(t, runner.starts[1].Equal(time.Date(2025, 3, 4, 12, 0, 0, 0, jst)))
	assert.Equal(t, 1, status.View().Failures)
}

func TestScheduler_LongRunSkipsTriggers(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 3, 5, 0, 0, 0, jst)}
	stopper := NewStopper()
	runner := &fakeRunner{clock: clock, stopper: stopper, duration: 11 * time.Hour, stopAt: 2}
	s, status := newTestScheduler(t, clock, runner, false)

	s.Run(context.Background())

	require.Len(t, runner.starts, 2)
	// 06:00 run ends at 17:00, so 12:00 and 16:00 are skipped and 20:00 runs;
	// that run ends at 07:00 next day and skips 06:00 as well
	assert.True(t, runner.starts[1].Equal(time.Date(2025, 3, 3, 20, 0, 0, 0, jst)))
	assert.Equal(t, 3, status.View().Skipped)
}

func TestScheduler_ContextCancelStops(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 3, 3, 5, 0, 0, 0, jst)}
	stopper := NewStopper()
	runner := &fakeRunner{clock: clock, stopper: stopper, stopAt: 100}
	s, _ := newTestScheduler(t, clock, runner, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Run(ctx)

	assert.Empty(t, runner.starts)
	assert.True(t, stopper.Stopped())
}
