package pipeline_usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/metrics"
	"github.com/Yaz-U/ai-news-daily/port/snapshot_port"
	"github.com/Yaz-U/ai-news-daily/repository"
	"github.com/Yaz-U/ai-news-daily/usecase/curate_usecase"
	"github.com/Yaz-U/ai-news-daily/usecase/publish_usecase"
)

var jst = time.FixedZone("JST", 9*60*60)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeIngestor struct {
	result curate_usecase.IngestResult
	calls  int
}

func (f *fakeIngestor) Execute(context.Context) curate_usecase.IngestResult {
	f.calls++
	return f.result
}

type fakeSummary struct{}

func (fakeSummary) Execute(_ context.Context, articles []domain.Article) (domain.SummaryResult, domain.GenerationInfo) {
	return domain.SummaryResult{NewsSummary: "digest"}, domain.GenerationInfo{Model: "model-b", Attempts: 2}
}

type fakeCommentary struct{}

func (fakeCommentary) Execute(context.Context, []domain.Article) ([]domain.CommentaryPick, domain.GenerationInfo) {
	return nil, domain.GenerationInfo{Fallback: true, Reason: "backend unavailable"}
}

type fakePublisher struct {
	history []*domain.Snapshot
	calls   int
	err     error
}

func (f *fakePublisher) Execute(_ context.Context, _ *domain.Snapshot, history []*domain.Snapshot) (publish_usecase.PublishResult, error) {
	f.calls++
	f.history = history
	if f.err != nil {
		return publish_usecase.PublishResult{}, f.err
	}
	return publish_usecase.PublishResult{PagePath: "web/index.html"}, nil
}

type failingSnapshots struct {
	*repository.SnapshotRepository
}

func (failingSnapshots) Save(context.Context, *domain.Snapshot) (string, error) {
	return "", domain.ErrSnapshotWrite
}

type fixture struct {
	dataDir   string
	textfile  string
	ingestor  *fakeIngestor
	publisher *fakePublisher
	repo      *repository.SnapshotRepository
	lock      *repository.RunLock
}

func newFixture(t *testing.T, articles []domain.Article) *fixture {
	dir := t.TempDir()
	return &fixture{
		dataDir:   dir,
		textfile:  filepath.Join(dir, "ainews.prom"),
		ingestor:  &fakeIngestor{result: curate_usecase.IngestResult{Articles: articles}},
		publisher: &fakePublisher{},
		repo:      repository.NewSnapshotRepository(dir, testLogger()),
		lock:      repository.NewRunLock(dir),
	}
}

func (f *fixture) pipeline(snapshots snapshot_port.SnapshotPort) *PipelineUsecase {
	u := NewPipelineUsecase(f.ingestor, fakeSummary{}, fakeCommentary{}, snapshots, f.publisher, f.lock, metrics.New(),
		Options{HistoryLimit: 12, Location: jst, MetricsTextfile: f.textfile}, testLogger())
	u.now = func() time.Time { return time.Date(2025, 3, 2, 21, 0, 0, 0, time.UTC) }
	u.newRunID = func() string { return "run-fixed" }
	return u
}

func someArticles() []domain.Article {
	return []domain.Article{
		{Source: "A", Title: "LLM one", URL: "https://example.com/1"},
		{Source: "B", Title: "LLM two", URL: "https://example.com/2"},
	}
}

func TestPipelineUsecase_Execute(t *testing.T) {
	f := newFixture(t, someArticles())

	report, err := f.pipeline(f.repo).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "run-fixed", report.RunID)
	assert.Equal(t, 2, report.Articles)
	assert.Equal(t, filepath.Join(f.dataDir, "news_20250303_060000.json"), report.SnapshotPath)
	assert.Equal(t, "web/index.html", report.PagePath)
	assert.Equal(t, "model-b", report.Generation.Summary.Model)
	assert.True(t, report.Generation.Commentary.Fallback)

	require.Len(t, f.publisher.history, 1)
	assert.Equal(t, "run-fixed", f.publisher.history[0].RunID)
	assert.Equal(t, domain.TimeSlotMorning, f.publisher.history[0].TimeSlot)
	assert.NotNil(t, f.publisher.history[0].Commentary)

	latest, err := f.repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "digest", latest.Summary.NewsSummary)

	prom, err := os.ReadFile(f.textfile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `ainews_runs_total{status="success"} 1`)
}

func TestPipelineUsecase_NoArticlesWritesNothing(t *testing.T) {
	f := newFixture(t, nil)

	report, err := f.pipeline(f.repo).Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Empty)
	assert.Equal(t, 0, f.publisher.calls)
	_, err = f.repo.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestPipelineUsecase_LockHeld(t *testing.T) {
	f := newFixture(t, someArticles())
	other := repository.NewRunLock(f.dataDir)
	require.NoError(t, other.Acquire())
	t.Cleanup(func() { _ = other.Release() })

	_, err := f.pipeline(f.repo).Execute(context.Background())

	assert.ErrorIs(t, err, domain.ErrRunInProgress)
	assert.Equal(t, 0, f.ingestor.calls)
}

func TestPipelineUsecase_SaveFailureFailsRun(t *testing.T) {
	f := newFixture(t, someArticles())

	_, err := f.pipeline(failingSnapshots{f.repo}).Execute(context.Background())

	assert.ErrorIs(t, err, domain.ErrSnapshotWrite)
	assert.Equal(t, 0, f.publisher.calls)

	// the lock is released on failure
	require.NoError(t, f.lock.Acquire())
	require.NoError(t, f.lock.Release())
}

func TestPipelineUsecase_PublishFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, someArticles())
	f.publisher.err = errors.New("disk full")

	report, err := f.pipeline(f.repo).Execute(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, report.SnapshotPath)
	assert.Empty(t, report.PagePath)
}
