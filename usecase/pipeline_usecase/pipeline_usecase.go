// ABOUTME: This file runs one end-to-end curation pass under the run lock
// ABOUTME: ingest, summarize, comment, persist and publish, each stage traced
package pipeline_usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/metrics"
	"github.com/Yaz-U/ai-news-daily/port/snapshot_port"
	"github.com/Yaz-U/ai-news-daily/usecase/curate_usecase"
	"github.com/Yaz-U/ai-news-daily/usecase/publish_usecase"
	"github.com/Yaz-U/ai-news-daily/utils/otel"
)

type Ingestor interface {
	Execute(ctx context.Context) curate_usecase.IngestResult
}

type SummaryGenerator interface {
	Execute(ctx context.Context, articles []domain.Article) (domain.SummaryResult, domain.GenerationInfo)
}

type CommentaryGenerator interface {
	Execute(ctx context.Context, articles []domain.Article) ([]domain.CommentaryPick, domain.GenerationInfo)
}

type Publisher interface {
	Execute(ctx context.Context, current *domain.Snapshot, history []*domain.Snapshot) (publish_usecase.PublishResult, error)
}

type RunLocker interface {
	Acquire() error
	Release() error
}

// Options holds the knobs the pipeline reads directly.
type Options struct {
	HistoryLimit    int
	Location        *time.Location
	MetricsTextfile string
}

// RunReport summarizes one pass for the caller and the logs.
type RunReport struct {
	RunID         string
	Articles      int
	FailedSources int
	Empty         bool
	SnapshotPath  string
	PagePath      string
	Uploaded      bool
	Generation    domain.Generation
	Duration      time.Duration
}

type PipelineUsecase struct {
	ingestor   Ingestor
	summary    SummaryGenerator
	commentary CommentaryGenerator
	snapshots  snapshot_port.SnapshotPort
	publisher  Publisher
	lock       RunLocker
	metrics    *metrics.Collector
	opts       Options
	logger     *slog.Logger
	now        func() time.Time
	newRunID   func() string
}

func NewPipelineUsecase(
	ingestor Ingestor,
	summary SummaryGenerator,
	commentary CommentaryGenerator,
	snapshots snapshot_port.SnapshotPort,
	publisher Publisher,
	lock RunLocker,
	collector *metrics.Collector,
	opts Options,
	logger *slog.Logger,
) *PipelineUsecase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 12
	}
	return &PipelineUsecase{
		ingestor:   ingestor,
		summary:    summary,
		commentary: commentary,
		snapshots:  snapshots,
		publisher:  publisher,
		lock:       lock,
		metrics:    collector,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
}

// Execute performs one run. It returns domain.ErrRunInProgress when another
// run holds the lock, and an error when the snapshot cannot be persisted.
// Every other failure degrades the output instead of failing the run.
func (u *PipelineUsecase) Execute(ctx context.Context) (*RunReport, error) {
	if err := u.lock.Acquire(); err != nil {
		return nil, err
	}
	defer func() {
		if err := u.lock.Release(); err != nil {
			u.logger.WarnContext(ctx, "failed to release run lock", "error", err)
		}
	}()

	start := u.now()
	report := &RunReport{RunID: u.newRunID()}
	logger := u.logger.With("run_id", report.RunID)

	ctx, span := otel.Tracer().Start(ctx, "pipeline.run", trace.WithAttributes(attribute.String("run_id", report.RunID)))
	defer span.End()

	status := metrics.StatusSuccess
	defer func() {
		report.Duration = u.now().Sub(start)
		u.metrics.RecordRun(status, report.Duration)
		if err := u.metrics.WriteTextfile(u.opts.MetricsTextfile); err != nil {
			logger.WarnContext(ctx, "failed to write metrics textfile", "path", u.opts.MetricsTextfile, "error", err)
		}
	}()

	logger.InfoContext(ctx, "run started")

	ingested := u.ingest(ctx)
	report.Articles = len(ingested.Articles)
	report.FailedSources = ingested.Failed()
	if len(ingested.Articles) == 0 {
		status = metrics.StatusEmpty
		report.Empty = true
		span.SetAttributes(attribute.Bool("empty", true))
		logger.WarnContext(ctx, "no articles collected, nothing to publish", "failed_sources", report.FailedSources)
		return report, nil
	}

	summary, summaryInfo := u.generateSummary(ctx, ingested.Articles)
	commentary, commentaryInfo := u.generateCommentary(ctx, ingested.Articles)
	report.Generation = domain.Generation{Summary: summaryInfo, Commentary: commentaryInfo}

	snap := domain.NewSnapshot(report.RunID, start.In(u.opts.Location), summary, commentary, ingested.Articles, report.Generation)

	path, err := u.save(ctx, snap)
	if err != nil {
		status = metrics.StatusFailure
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot save failed")
		logger.ErrorContext(ctx, "run failed", "error", err)
		return report, err
	}
	report.SnapshotPath = path

	history, err := u.snapshots.History(ctx, u.opts.HistoryLimit)
	if err != nil {
		logger.WarnContext(ctx, "history read failed, publishing current snapshot only", "error", err)
		history = []*domain.Snapshot{snap}
	}

	u.publish(ctx, logger, snap, history, report)

	logger.InfoContext(ctx, "run completed",
		"articles", report.Articles,
		"failed_sources", report.FailedSources,
		"summary_model", summaryInfo.Model,
		"summary_fallback", summaryInfo.Fallback,
		"commentary_items", len(commentary),
		"snapshot", report.SnapshotPath,
		"page", report.PagePath,
		"uploaded", report.Uploaded,
		"duration_ms", u.now().Sub(start).Milliseconds())

	return report, nil
}

func (u *PipelineUsecase) ingest(ctx context.Context) curate_usecase.IngestResult {
	ctx, span := otel.Tracer().Start(ctx, "pipeline.ingest")
	defer span.End()

	result := u.ingestor.Execute(ctx)
	span.SetAttributes(
		attribute.Int("articles", len(result.Articles)),
		attribute.Int("failed_sources", result.Failed()),
	)
	return result
}

func (u *PipelineUsecase) generateSummary(ctx context.Context, articles []domain.Article) (domain.SummaryResult, domain.GenerationInfo) {
	ctx, span := otel.Tracer().Start(ctx, "pipeline.summary")
	defer span.End()

	result, info := u.summary.Execute(ctx, articles)
	setGenerationAttributes(span, info)
	return result, info
}

func (u *PipelineUsecase) generateCommentary(ctx context.Context, articles []domain.Article) ([]domain.CommentaryPick, domain.GenerationInfo) {
	ctx, span := otel.Tracer().Start(ctx, "pipeline.commentary")
	defer span.End()

	picks, info := u.commentary.Execute(ctx, articles)
	setGenerationAttributes(span, info)
	span.SetAttributes(attribute.Int("items", len(picks)))
	return picks, info
}

func (u *PipelineUsecase) save(ctx context.Context, snap *domain.Snapshot) (string, error) {
	ctx, span := otel.Tracer().Start(ctx, "pipeline.save")
	defer span.End()

	path, err := u.snapshots.Save(ctx, snap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return path, err
}

func (u *PipelineUsecase) publish(ctx context.Context, logger *slog.Logger, snap *domain.Snapshot, history []*domain.Snapshot, report *RunReport) {
	ctx, span := otel.Tracer().Start(ctx, "pipeline.publish")
	defer span.End()

	result, err := u.publisher.Execute(ctx, snap, history)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		logger.ErrorContext(ctx, "publish failed, snapshot is still saved", "error", err)
		return
	}
	report.PagePath = result.PagePath
	report.Uploaded = result.Uploaded
	if result.UploadErr != nil {
		span.RecordError(result.UploadErr)
	}
	span.SetAttributes(attribute.Bool("uploaded", result.Uploaded))
}

func setGenerationAttributes(span trace.Span, info domain.GenerationInfo) {
	span.SetAttributes(
		attribute.String("model", info.Model),
		attribute.Bool("fallback", info.Fallback),
		attribute.Int("attempts", info.Attempts),
	)
}
