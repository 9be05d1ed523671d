package digest_usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/metrics"
	"github.com/Yaz-U/ai-news-daily/port/llm_port"
)

const StageCommentary = "commentary"

// CommentaryUsecase produces the editorial commentary cards. It shares the
// candidate protocol with SummaryUsecase but owns its own prompt and shape.
type CommentaryUsecase struct {
	orchestrator *Orchestrator[[]domain.CommentaryPick]
	poolSize     int
}

func NewCommentaryUsecase(generator llm_port.GeneratorPort, candidates []string, poolSize, maxItems int, collector *metrics.Collector, logger *slog.Logger) *CommentaryUsecase {
	if poolSize <= 0 {
		poolSize = 15
	}
	if maxItems <= 0 {
		maxItems = 4
	}
	return &CommentaryUsecase{
		orchestrator: NewOrchestrator(StageCommentary, generator, candidates, parseCommentaryFor(maxItems), ClassifyFailure, collector, logger),
		poolSize:     poolSize,
	}
}

// Execute returns an empty, non-nil list when nothing usable was produced.
func (u *CommentaryUsecase) Execute(ctx context.Context, articles []domain.Article) ([]domain.CommentaryPick, domain.GenerationInfo) {
	if len(articles) == 0 {
		return []domain.CommentaryPick{}, domain.GenerationInfo{Fallback: true, Reason: domain.ErrNoArticles.Error()}
	}

	pool := articles
	if len(pool) > u.poolSize {
		pool = pool[:u.poolSize]
	}
	return u.orchestrator.Run(ctx, BuildCommentaryPrompt(pool), func() []domain.CommentaryPick {
		return []domain.CommentaryPick{}
	})
}

func parseCommentaryFor(maxItems int) ParseFunc[[]domain.CommentaryPick] {
	return func(raw string) ([]domain.CommentaryPick, error) {
		arr, err := ExtractJSONArray(raw)
		if err != nil {
			return nil, err
		}

		var items []domain.CommentaryPick
		if err := json.Unmarshal([]byte(arr), &items); err != nil {
			return nil, &ParseError{Reason: "decode commentary list", Raw: raw, Err: err}
		}

		picks := make([]domain.CommentaryPick, 0, maxItems)
		for _, item := range items {
			if strings.TrimSpace(item.Headline) == "" || strings.TrimSpace(item.Body) == "" {
				continue
			}
			picks = append(picks, item)
			if len(picks) == maxItems {
				break
			}
		}
		if len(picks) == 0 {
			return nil, &ParseError{Reason: "no item has both headline and body", Raw: raw}
		}
		return picks, nil
	}
}
