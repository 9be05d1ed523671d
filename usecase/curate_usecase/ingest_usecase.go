package curate_usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/metrics"
	"github.com/Yaz-U/ai-news-daily/port/feed_port"
)

// IngestResult is the ranked article list plus per-source accounting.
type IngestResult struct {
	Articles []domain.Article
	Stats    []domain.SourceStats
}

// Failed returns how many sources could not be fetched.
func (r IngestResult) Failed() int {
	n := 0
	for _, s := range r.Stats {
		if s.Failed {
			n++
		}
	}
	return n
}

type IngestUsecase struct {
	fetcher     feed_port.FeedFetcherPort
	curator     *Curator
	sources     []domain.FeedSource
	concurrency int
	metrics     *metrics.Collector
	logger      *slog.Logger
	now         func() time.Time
}

func NewIngestUsecase(
	fetcher feed_port.FeedFetcherPort,
	curator *Curator,
	sources []domain.FeedSource,
	concurrency int,
	collector *metrics.Collector,
	logger *slog.Logger,
) *IngestUsecase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &IngestUsecase{
		fetcher:     fetcher,
		curator:     curator,
		sources:     sources,
		concurrency: concurrency,
		metrics:     collector,
		logger:      logger,
		now:         time.Now,
	}
}

type sourceResult struct {
	articles []domain.Article
	stats    domain.SourceStats
}

// Execute fetches every source concurrently. A failing source is logged and
// contributes nothing; the merge follows registry order regardless of which
// fetch finishes first.
func (u *IngestUsecase) Execute(ctx context.Context) IngestResult {
	now := u.now()
	results := make([]sourceResult, len(u.sources))

	var g errgroup.Group
	g.SetLimit(u.concurrency)

	for i, source := range u.sources {
		g.Go(func() error {
			feed, err := u.fetcher.FetchFeed(ctx, source)
			u.metrics.RecordFeedFetch(source.Name, err)
			if err != nil {
				u.logger.WarnContext(ctx, "feed fetch failed",
					"source", source.Name,
					"url", source.URL,
					"error", err)
				results[i] = sourceResult{stats: domain.SourceStats{Source: source.Name, Failed: true}}
				return nil
			}

			articles, stats := u.curator.CurateFeed(feed, now)
			u.logger.InfoContext(ctx, "feed curated",
				"source", source.Name,
				"entries", len(feed.Entries),
				"accepted", stats.Accepted,
				"skipped_old", stats.SkippedOld,
				"irrelevant", stats.Irrelevant)
			results[i] = sourceResult{articles: articles, stats: stats}
			return nil
		})
	}
	_ = g.Wait()

	var merged []domain.Article
	stats := make([]domain.SourceStats, 0, len(results))
	for _, r := range results {
		merged = append(merged, r.articles...)
		stats = append(stats, r.stats)
	}

	ranked := DedupeAndRank(merged)
	u.metrics.SetArticlesRanked(len(ranked))

	result := IngestResult{Articles: ranked, Stats: stats}
	u.logger.InfoContext(ctx, "ingest completed",
		"sources", len(u.sources),
		"failed_sources", result.Failed(),
		"merged", len(merged),
		"ranked", len(ranked))

	return result
}
