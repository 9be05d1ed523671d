package curate_usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeywordMatcher_Matches(t *testing.T) {
	m := NewKeywordMatcher([]string{"LLM", "OpenAI", "生成AI", " "})

	assert.True(t, m.Matches("New llm benchmark", ""))
	assert.True(t, m.Matches("Weekly roundup", "notes on openai pricing"))
	assert.True(t, m.Matches("生成AIの活用事例", ""))
	assert.False(t, m.Matches("Gardening tips", "tomatoes"))
}

func TestIsFresh(t *testing.T) {
	cutoff := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	before := cutoff.Add(-time.Second)
	after := cutoff.Add(time.Second)

	assert.True(t, IsFresh(nil, cutoff))
	assert.True(t, IsFresh(&cutoff, cutoff))
	assert.True(t, IsFresh(&after, cutoff))
	assert.False(t, IsFresh(&before, cutoff))
}
