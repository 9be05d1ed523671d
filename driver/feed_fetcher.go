package driver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Yaz-U/ai-news-daily/domain"
	apperrors "github.com/Yaz-U/ai-news-daily/utils/errors"
	"github.com/Yaz-U/ai-news-daily/utils/rate_limiter"
)

// FeedFetcher pulls RSS, Atom and JSON feeds with gofeed.
type FeedFetcher struct {
	client      *http.Client
	rateLimiter *rate_limiter.HostRateLimiter
	userAgent   string
	timeout     time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

func NewFeedFetcher(client *http.Client, rateLimiter *rate_limiter.HostRateLimiter, userAgent string, timeout time.Duration, logger *slog.Logger) *FeedFetcher {
	return &FeedFetcher{
		client:      client,
		rateLimiter: rateLimiter,
		userAgent:   userAgent,
		timeout:     timeout,
		now:         time.Now,
		logger:      logger,
	}
}

// FetchFeed fetches and parses one source within the fetcher's timeout.
func (f *FeedFetcher) FetchFeed(ctx context.Context, source domain.FeedSource) (*domain.FetchedFeed, error) {
	if err := validateFeedURL(source.URL); err != nil {
		return nil, fetchError(source, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if f.rateLimiter != nil {
		if err := f.rateLimiter.WaitForHost(ctx, source.URL); err != nil {
			return nil, fetchError(source, fmt.Errorf("rate limiting failed: %w", err))
		}
	}

	fp := gofeed.NewParser()
	fp.Client = f.client
	if f.userAgent != "" {
		fp.UserAgent = f.userAgent
	}

	start := time.Now()
	feed, err := fp.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fetchError(source, err)
	}

	f.logger.Debug("feed parsed",
		"source", source.Name,
		"feed_title", feed.Title,
		"items", len(feed.Items),
		"duration_ms", time.Since(start).Milliseconds())

	return &domain.FetchedFeed{
		Source:    source,
		Title:     feed.Title,
		Entries:   convertItems(feed.Items),
		FetchedAt: f.now(),
	}, nil
}

func fetchError(source domain.FeedSource, cause error) error {
	return apperrors.FeedFetchError(
		"fetching feed "+source.Name,
		fmt.Errorf("%w: %w", domain.ErrSourceFetch, cause),
		map[string]interface{}{"source": source.Name, "url": source.URL},
	)
}

func convertItems(items []*gofeed.Item) []domain.FeedEntry {
	entries := make([]domain.FeedEntry, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, domain.FeedEntry{
			Title:           item.Title,
			Link:            item.Link,
			Description:     item.Description,
			Content:         item.Content,
			Published:       item.Published,
			Updated:         item.Updated,
			PublishedParsed: item.PublishedParsed,
			UpdatedParsed:   item.UpdatedParsed,
		})
	}
	return entries
}

func validateFeedURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in URL")
	}
	return nil
}
