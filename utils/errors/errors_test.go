package errors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yaz-U/ai-news-daily/domain"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		want     string
	}{
		{
			name: "error with cause",
			appError: &AppError{
				Code:    ErrCodeFeedFetch,
				Message: "failed to fetch feed",
				Cause:   errors.New("connection timeout"),
			},
			want: "FEED_FETCH_ERROR: failed to fetch feed (caused by: connection timeout)",
		},
		{
			name: "error without cause",
			appError: &AppError{
				Code:    ErrCodeValidation,
				Message: "invalid trigger time",
			},
			want: "VALIDATION_ERROR: invalid trigger time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.appError.Error())
		})
	}
}

func TestAppError_UnwrapKeepsSentinel(t *testing.T) {
	err := FeedFetchError("feed failed", fmt.Errorf("%w: 503", domain.ErrSourceFetch), map[string]interface{}{"source": "Wired"})

	assert.True(t, IsFeedFetchError(err))
	assert.False(t, IsMalformedResponse(err))
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", fmt.Errorf("gemini-2.0-flash: %w", domain.ErrBackendQuota), true},
		{"http 429", &HTTPError{StatusCode: http.StatusTooManyRequests, Message: "slow down"}, true},
		{"wrapped http 429", fmt.Errorf("call: %w", &HTTPError{StatusCode: 429}), true},
		{"resource exhausted text", errors.New("rpc error: RESOURCE_EXHAUSTED"), true},
		{"quota text", errors.New("You exceeded your current Quota"), true},
		{"http 500", &HTTPError{StatusCode: http.StatusInternalServerError, Message: "boom"}, false},
		{"malformed", fmt.Errorf("%w: no object", domain.ErrMalformedResponse), false},
		{"timeout", context.DeadlineExceeded, false},
		{"bare 429 text", errors.New("googleapi: Error 429: too many requests"), true},
		{"port containing 429", errors.New(`Post "http://127.0.0.1:42913/api": context deadline exceeded`), false},
		{"port equal to 429", errors.New("dial tcp ollama.internal:429: connect: connection refused"), false},
		{"status code 429", errors.New("unexpected status code 429"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuotaError(tt.err))
		})
	}
}

func TestHTTPError_IsQuotaSentinel(t *testing.T) {
	assert.True(t, errors.Is(&HTTPError{StatusCode: 429}, domain.ErrBackendQuota))
	assert.False(t, errors.Is(&HTTPError{StatusCode: 400}, domain.ErrBackendQuota))
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	LogError(logger, PublishError("upload failed", errors.New("550 denied"), map[string]interface{}{"host": "ftp.example.com"}), "publish")

	out := buf.String()
	assert.Contains(t, out, `"error_code":"PUBLISH_ERROR"`)
	assert.Contains(t, out, `"host":"ftp.example.com"`)
	assert.Contains(t, out, `"cause":"550 denied"`)

	buf.Reset()
	LogError(logger, errors.New("plain"), "publish")
	assert.Contains(t, buf.String(), "unknown error occurred")

	// nil logger must not panic
	LogError(nil, errors.New("ignored"), "noop")
}
