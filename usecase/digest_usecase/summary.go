package digest_usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/metrics"
	"github.com/Yaz-U/ai-news-daily/port/llm_port"
	"github.com/Yaz-U/ai-news-daily/utils/html_parser"
)

const (
	StageSummary = "summary"

	fallbackPointChars = 50

	fallbackNewsSummary    = "【テストモード】APIキーが設定されていないため、実際の要約は生成されていません。GEMINI_API_KEY環境変数を設定してください。収集された記事のタイトルのみ表示しています。"
	fallbackOpinionSummary = "【テストモード】メディアの意見分析はAPIキーが必要です。実際の運用時はGemini APIキーを設定することで、ポジティブ・ネガティブ・中立の意見分析が自動生成されます。"
	fallbackSentiment      = "APIキー設定後に自動生成されます"
)

// SummaryUsecase produces the digest object for a run.
type SummaryUsecase struct {
	orchestrator *Orchestrator[domain.SummaryResult]
	topN         int
}

func NewSummaryUsecase(generator llm_port.GeneratorPort, candidates []string, topN int, collector *metrics.Collector, logger *slog.Logger) *SummaryUsecase {
	if topN <= 0 {
		topN = 10
	}
	return &SummaryUsecase{
		orchestrator: NewOrchestrator(StageSummary, generator, candidates, parseSummaryFor(topN), ClassifyFailure, collector, logger),
		topN:         topN,
	}
}

// Execute never fails; a degraded digest is returned when no candidate
// produced a valid object.
func (u *SummaryUsecase) Execute(ctx context.Context, articles []domain.Article) (domain.SummaryResult, domain.GenerationInfo) {
	if len(articles) == 0 {
		return FallbackSummary(articles, u.topN), domain.GenerationInfo{Fallback: true, Reason: domain.ErrNoArticles.Error()}
	}

	top := articles
	if len(top) > u.topN {
		top = top[:u.topN]
	}
	return u.orchestrator.Run(ctx, BuildSummaryPrompt(top), func() domain.SummaryResult {
		return FallbackSummary(articles, u.topN)
	})
}

func parseSummaryFor(topN int) ParseFunc[domain.SummaryResult] {
	return func(raw string) (domain.SummaryResult, error) {
		var result domain.SummaryResult

		obj, err := ExtractJSONObject(raw)
		if err != nil {
			return result, err
		}
		if err := json.Unmarshal([]byte(obj), &result); err != nil {
			return result, &ParseError{Reason: "decode summary object", Raw: raw, Err: err}
		}
		if strings.TrimSpace(result.NewsSummary) == "" {
			return result, &ParseError{Reason: "news_summary is empty", Raw: raw}
		}

		result.TopArticles = normalizeTopArticles(result.TopArticles, topN)
		if len(result.TopArticles) == 0 {
			return result, &ParseError{Reason: "top_articles is empty", Raw: raw}
		}
		return result, nil
	}
}

// normalizeTopArticles drops entries without a title or url, orders the rest
// by the rank the backend gave (unranked last), caps them at topN and
// renumbers them 1..n.
func normalizeTopArticles(in []domain.TopArticle, topN int) []domain.TopArticle {
	out := make([]domain.TopArticle, 0, len(in))
	for _, a := range in {
		if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.URL) == "" {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Rank, out[j].Rank
		if ri <= 0 || rj <= 0 {
			return ri > 0 && rj <= 0
		}
		return ri < rj
	})
	if len(out) > topN {
		out = out[:topN]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// FallbackSummary is the degraded digest: placeholder texts plus the first
// topN articles with a shortened point.
func FallbackSummary(articles []domain.Article, topN int) domain.SummaryResult {
	n := min(topN, len(articles))
	top := make([]domain.TopArticle, 0, n)
	for i, a := range articles[:n] {
		top = append(top, domain.TopArticle{
			Rank:   i + 1,
			Title:  a.Title,
			Source: a.Source,
			URL:    a.URL,
			Point:  html_parser.TruncateRunes(a.Summary, fallbackPointChars) + "...",
		})
	}

	return domain.SummaryResult{
		NewsSummary:    fallbackNewsSummary,
		OpinionSummary: fallbackOpinionSummary,
		Sentiment: domain.Sentiment{
			Positive: fallbackSentiment,
			Negative: fallbackSentiment,
			Neutral:  fallbackSentiment,
		},
		TopArticles: top,
	}
}
