package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/Yaz-U/ai-news-daily/metrics"
)

// Options controls the trigger loop.
type Options struct {
	RunOnStart    bool
	ChunkInterval time.Duration
}

// Scheduler fires the runner at each trigger time until stopped. Runs are
// serial; triggers that pass during a run are skipped, not queued.
type Scheduler struct {
	triggers *TriggerSet
	runner   Runner
	stopper  *Stopper
	status   *Status
	metrics  *metrics.Collector
	opts     Options
	logger   *slog.Logger
	clock    Clock
}

func NewScheduler(
	triggers *TriggerSet,
	runner Runner,
	stopper *Stopper,
	status *Status,
	collector *metrics.Collector,
	opts Options,
	logger *slog.Logger,
) *Scheduler {
	if opts.ChunkInterval <= 0 {
		opts.ChunkInterval = 5 * time.Minute
	}
	return &Scheduler{
		triggers: triggers,
		runner:   runner,
		stopper:  stopper,
		status:   status,
		metrics:  collector,
		opts:     opts,
		logger:   logger,
		clock:    realClock{},
	}
}

// Run blocks until the stopper fires or ctx is cancelled. A run in progress
// is never interrupted; the stop is honored before the next wait.
func (s *Scheduler) Run(ctx context.Context) {
	if ctx.Err() != nil {
		s.stopper.Stop()
	}
	stop := context.AfterFunc(ctx, s.stopper.Stop)
	defer stop()

	// runs finish even if ctx is cancelled mid-run
	runCtx := context.WithoutCancel(ctx)

	s.logger.Info("scheduler started",
		"triggers", s.triggers.Specs(),
		"location", s.triggers.Location().String(),
		"run_on_start", s.opts.RunOnStart,
		"chunk_interval", s.opts.ChunkInterval)

	if s.opts.RunOnStart && !s.stopper.Stopped() {
		s.execute(runCtx, "startup")
	}

	for !s.stopper.Stopped() {
		next := s.triggers.Next(s.clock.Now())
		s.status.setNext(next)
		s.metrics.SetNextTrigger(next)
		s.logger.Info("next run scheduled",
			"at", next.Format(time.RFC3339),
			"in", next.Sub(s.clock.Now()).Round(time.Second).String())

		if !waitUntil(s.clock, s.stopper, next, s.opts.ChunkInterval) {
			break
		}

		s.execute(runCtx, next.Format("15:04"))

		if skipped := s.triggers.Between(next, s.clock.Now()); skipped > 0 {
			s.status.addSkipped(skipped)
			s.logger.Warn("triggers passed while the run was executing and were skipped", "skipped", skipped)
		}
	}

	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) execute(ctx context.Context, trigger string) {
	s.status.setRunning(true)
	defer s.status.setRunning(false)

	s.logger.Info("run triggered", "trigger", trigger)
	outcome := s.runner.Run(ctx)

	rec := RunRecord{
		Trigger:   trigger,
		StartedAt: outcome.StartedAt,
		Duration:  outcome.Duration,
		ExitCode:  outcome.ExitCode,
	}
	if outcome.Err != nil {
		rec.Error = outcome.Err.Error()
	}

	failed := !outcome.Succeeded()
	s.status.recordRun(rec, failed)

	if failed {
		s.metrics.RecordRun(metrics.StatusFailure, outcome.Duration)
		s.logger.Error("run failed",
			"trigger", trigger,
			"exit_code", outcome.ExitCode,
			"duration", outcome.Duration.String(),
			"error", outcome.Err)
		return
	}

	s.metrics.RecordRun(metrics.StatusSuccess, outcome.Duration)
	s.logger.Info("run finished",
		"trigger", trigger,
		"exit_code", outcome.ExitCode,
		"duration", outcome.Duration.String())
}
