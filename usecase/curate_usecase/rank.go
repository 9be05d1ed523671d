package curate_usecase

import (
	"sort"

	"github.com/Yaz-U/ai-news-daily/domain"
)

// Dedupe keeps the first article seen for each url.
func Dedupe(articles []domain.Article) []domain.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.URL]; ok {
			continue
		}
		seen[a.URL] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}

// Rank sorts newest first. Unknown instants go after every known one; ties
// keep their merge order.
func Rank(articles []domain.Article) []domain.Article {
	ranked := make([]domain.Article, len(articles))
	copy(ranked, articles)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].PublishedAt, ranked[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return ranked
}

// DedupeAndRank is the single entry point used by the pipeline.
func DedupeAndRank(articles []domain.Article) []domain.Article {
	return Rank(Dedupe(articles))
}
