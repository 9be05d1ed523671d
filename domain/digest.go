package domain

// Sentiment is the positive/negative/neutral opinion triple.
type Sentiment struct {
	Positive string `json:"positive"`
	Negative string `json:"negative"`
	Neutral  string `json:"neutral"`
}

// TopArticle is one ranked reference inside a SummaryResult.
type TopArticle struct {
	Rank   int    `json:"rank"`
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
	Point  string `json:"point"`
}

// SummaryResult is the digest produced for one run.
type SummaryResult struct {
	NewsSummary    string       `json:"news_summary"`
	OpinionSummary string       `json:"opinion_summary"`
	Sentiment      Sentiment    `json:"sentiment"`
	TopArticles    []TopArticle `json:"top_articles"`
}

// CommentaryPick is one editorial commentary card.
type CommentaryPick struct {
	Headline    string `json:"headline"`
	Body        string `json:"body"`
	WhyMatters  string `json:"why_matters"`
	SourceTitle string `json:"source_title"`
	SourceURL   string `json:"source_url"`
	SourceName  string `json:"source_name"`
}

// GenerationInfo records which candidate produced a result, or why the
// fallback was used.
type GenerationInfo struct {
	Model    string `json:"model,omitempty"`
	Fallback bool   `json:"fallback"`
	Reason   string `json:"reason,omitempty"`
	Attempts int    `json:"attempts"`
}

// Generation groups GenerationInfo for both backend projections of a run.
type Generation struct {
	Summary    GenerationInfo `json:"summary"`
	Commentary GenerationInfo `json:"commentary"`
}
