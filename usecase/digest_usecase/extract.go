package digest_usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Yaz-U/ai-news-daily/domain"
)

// ParseError reports a completion that held no usable JSON value. Raw keeps
// the completion for debugging and is never part of the message.
type ParseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed backend response: %s: %v", e.Reason, e.Err)
	}
	return "malformed backend response: " + e.Reason
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrMalformedResponse, e.Err}
	}
	return []error{domain.ErrMalformedResponse}
}

var fenceMarker = regexp.MustCompile("```(?:json|JSON)?")

// StripFences removes markdown code fence markers wherever they appear.
func StripFences(text string) string {
	return strings.TrimSpace(fenceMarker.ReplaceAllString(text, ""))
}

// ExtractJSONObject returns the first balanced {...} value in text.
func ExtractJSONObject(text string) (string, error) {
	return extractBalanced(text, '{', '}')
}

// ExtractJSONArray returns the first balanced [...] value in text.
func ExtractJSONArray(text string) (string, error) {
	return extractBalanced(text, '[', ']')
}

func extractBalanced(text string, open, closer byte) (string, error) {
	cleaned := StripFences(text)

	start := strings.IndexByte(cleaned, open)
	if start < 0 {
		return "", &ParseError{Reason: fmt.Sprintf("no %q found", open), Raw: text}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		c := cleaned[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return cleaned[start : i+1], nil
			}
		}
	}

	return "", &ParseError{Reason: fmt.Sprintf("unbalanced %q", open), Raw: text}
}
