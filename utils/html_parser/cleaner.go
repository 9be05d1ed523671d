// Package html_parser turns feed markup into the plain text stored on articles.
package html_parser

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

// stripPolicy drops every tag and the contents of script and style.
var stripPolicy = bluemonday.StrictPolicy().AddSpaceWhenStrippingTag(true)

// CleanSummary strips markup, decodes entities, collapses whitespace and caps
// the result at maxChars characters.
func CleanSummary(raw string, maxChars int) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	// plain text needs no sanitizing
	if strings.Contains(text, "<") {
		text = stripPolicy.Sanitize(text)
	}
	text = html.UnescapeString(text)
	text = norm.NFC.String(text)
	return TruncateRunes(normalizeWhitespace(text), maxChars)
}

// CleanTitle collapses whitespace and normalizes the title.
func CleanTitle(raw string) string {
	return normalizeWhitespace(norm.NFC.String(raw))
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateRunes cuts s to at most n characters without splitting a rune.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
