package html_parser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		max  int
		want string
	}{
		{name: "strips tags", raw: "<p>The <b>LLM</b> is out.</p>", max: 500, want: "The LLM is out."},
		{name: "drops script body", raw: "Hello<script>alert(1)</script>", max: 500, want: "Hello"},
		{name: "decodes entities", raw: "Tom &amp; Jerry &lt;3", max: 500, want: "Tom & Jerry <3"},
		{name: "collapses whitespace", raw: "a\n\n  b\t c", max: 500, want: "a b c"},
		{name: "separates blocks", raw: "<p>first</p><p>second</p>", max: 500, want: "first second"},
		{name: "truncates", raw: "abcdef", max: 3, want: "abc"},
		{name: "empty", raw: "", max: 500, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanSummary(tt.raw, tt.max))
		})
	}
}

func TestCleanSummary_MultibyteLimit(t *testing.T) {
	got := CleanSummary(strings.Repeat("あ", 600), 500)

	assert.Equal(t, 500, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "日本", TruncateRunes("日本語", 2))
	assert.Equal(t, "日本語", TruncateRunes("日本語", 10))
	assert.Equal(t, "", TruncateRunes("日本語", 0))
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "OpenAI ships GPT", CleanTitle("  OpenAI\n ships   GPT "))
}
