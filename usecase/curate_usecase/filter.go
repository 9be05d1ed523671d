package curate_usecase

import (
	"strings"
	"time"
)

// KeywordMatcher tests title+summary against a fixed vocabulary.
type KeywordMatcher struct {
	keywords []string
}

func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &KeywordMatcher{keywords: lowered}
}

// Matches is a case-insensitive substring test of any keyword.
func (m *KeywordMatcher) Matches(title, summary string) bool {
	text := strings.ToLower(title + " " + summary)
	for _, kw := range m.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// IsFresh reports whether an instant passes the cutoff. Unknown instants
// always pass.
func IsFresh(publishedAt *time.Time, cutoff time.Time) bool {
	if publishedAt == nil {
		return true
	}
	return !publishedAt.Before(cutoff)
}
