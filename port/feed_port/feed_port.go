package feed_port

//go:generate mockgen -source=feed_port.go -destination=../../mocks/mock_feed_port.go -package=mocks

import (
	"context"

	"github.com/Yaz-U/ai-news-daily/domain"
)

// FeedFetcherPort pulls one syndicated source.
type FeedFetcherPort interface {
	FetchFeed(ctx context.Context, source domain.FeedSource) (*domain.FetchedFeed, error)
}
