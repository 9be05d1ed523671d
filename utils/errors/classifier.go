// ABOUTME: This file classifies completion backend errors for candidate selection
// ABOUTME: Quota signatures advance to the next candidate, everything else stops the loop
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/Yaz-U/ai-news-daily/domain"
)

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Is lets a 429 match domain.ErrBackendQuota through errors.Is.
func (e *HTTPError) Is(target error) bool {
	return target == domain.ErrBackendQuota && e.StatusCode == http.StatusTooManyRequests
}

// quotaSignature matches rate or quota wording. A bare 429 only counts after
// an HTTP status prefix, so ports like host:429 do not match.
var quotaSignature = regexp.MustCompile(`(?i)\b(?:http|error|status(?: code)?)[ :=]*429\b|too many requests|quota|resource_exhausted|rate limit`)

// IsQuotaError reports whether err carries a rate or quota signature.
// Backends do not all return typed errors, so the message is checked as well.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, domain.ErrBackendQuota) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	return quotaSignature.MatchString(err.Error())
}

// IsFeedFetchError checks if an error represents a per-source fetch failure
func IsFeedFetchError(err error) bool {
	return errors.Is(err, domain.ErrSourceFetch)
}

// IsMalformedResponse checks if an error represents an unparseable backend reply
func IsMalformedResponse(err error) bool {
	return errors.Is(err, domain.ErrMalformedResponse)
}
