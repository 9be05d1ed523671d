package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Yaz-U/ai-news-daily/domain"
)

//go:embed feeds.yaml
var defaultFeedsYAML []byte

type feedRegistry struct {
	Sources []domain.FeedSource `yaml:"sources"`
}

// DefaultFeeds returns the embedded feed registry.
func DefaultFeeds() ([]domain.FeedSource, error) {
	return parseFeeds(defaultFeedsYAML)
}

func parseFeeds(data []byte) ([]domain.FeedSource, error) {
	var reg feedRegistry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decoding feed registry: %w", err)
	}
	return reg.Sources, nil
}

// DefaultKeywords is the relevance vocabulary. Matching is a case-insensitive
// substring test, so short entries such as "AI" also match inside words.
var DefaultKeywords = []string{
	"AI", "artificial intelligence", "machine learning", "deep learning",
	"LLM", "large language model", "GPT", "ChatGPT", "Claude", "Gemini",
	"OpenAI", "Anthropic", "Google DeepMind", "Meta AI", "Microsoft AI",
	"neural network", "generative AI", "foundation model", "AGI",
	"robotics", "autonomous", "computer vision", "natural language",
	"Nvidia", "GPU", "semiconductor", "chip", "data center",
}

// DefaultCandidates lists the completion models in priority order.
var DefaultCandidates = []string{
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
	"gemini-2.5-flash",
	"gemini-flash-lite-latest",
}

// DefaultTriggers are the daily local run times.
var DefaultTriggers = []string{"06:00", "12:00", "16:00", "20:00"}
