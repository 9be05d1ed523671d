package curate_usecase

import (
	"time"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/utils/html_parser"
)

// CurateOptions bounds what one source may contribute.
type CurateOptions struct {
	MaxPerSource int
	MaxAge       time.Duration
	SummaryChars int
	Location     *time.Location
}

// Curator turns raw feed entries into accepted articles.
type Curator struct {
	matcher *KeywordMatcher
	opts    CurateOptions
}

func NewCurator(keywords []string, opts CurateOptions) *Curator {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Curator{matcher: NewKeywordMatcher(keywords), opts: opts}
}

// CurateFeed walks the entries in feed order. Stale entries are dropped
// before the relevance test; only relevant entries count toward the cap.
func (c *Curator) CurateFeed(feed *domain.FetchedFeed, now time.Time) ([]domain.Article, domain.SourceStats) {
	stats := domain.SourceStats{Source: feed.Source.Name}
	cutoff := now.Add(-c.opts.MaxAge)

	var articles []domain.Article
	for _, entry := range feed.Entries {
		if stats.Accepted >= c.opts.MaxPerSource {
			break
		}
		if entry.Link == "" {
			continue
		}

		publishedAt := ResolvePublishedAt(entry, c.opts.Location)
		if !IsFresh(publishedAt, cutoff) {
			stats.SkippedOld++
			continue
		}

		title := html_parser.CleanTitle(entry.Title)
		raw := entry.Description
		if raw == "" {
			raw = entry.Content
		}
		summary := html_parser.CleanSummary(raw, c.opts.SummaryChars)

		if !c.matcher.Matches(title, summary) {
			stats.Irrelevant++
			continue
		}

		articles = append(articles, domain.Article{
			Source:      feed.Source.Name,
			Title:       title,
			URL:         entry.Link,
			Summary:     summary,
			PublishedAt: publishedAt,
			FetchedAt:   feed.FetchedAt,
		})
		stats.Accepted++
	}

	return articles, stats
}
