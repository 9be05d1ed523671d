package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yaz-U/ai-news-daily/job"
	"github.com/Yaz-U/ai-news-daily/metrics"
)

type staticStatus struct {
	view job.StatusView
}

func (s staticStatus) View() job.StatusView { return s.view }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, path string, status StatusSource, collector *metrics.Collector) *httptest.ResponseRecorder {
	t.Helper()
	e := NewStatusServer(status, collector.Registry(), false, "", testLogger())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStatusServer_Health(t *testing.T) {
	rec := serve(t, "/health", staticStatus{}, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestStatusServer_Status(t *testing.T) {
	next := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	view := job.StatusView{
		NextTrigger: &next,
		LastRun:     &job.RunRecord{Trigger: "06:00", ExitCode: 1, Error: "exit status 1"},
		Runs:        4,
		Failures:    1,
	}

	rec := serve(t, "/status", staticStatus{view: view}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got job.StatusView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 4, got.Runs)
	assert.Equal(t, "06:00", got.LastRun.Trigger)
	assert.True(t, next.Equal(*got.NextTrigger))
}

func TestStatusServer_Metrics(t *testing.T) {
	collector := metrics.New()
	collector.SetNextTrigger(time.Unix(1741000000, 0))

	rec := serve(t, "/metrics", staticStatus{}, collector)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ainews_next_trigger_timestamp_seconds 1.741e+09")
}

func TestStatusServer_NoMetricsWithoutRegistry(t *testing.T) {
	rec := serve(t, "/metrics", staticStatus{}, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusServer_WithTracing(t *testing.T) {
	e := NewStatusServer(staticStatus{}, nil, true, "ai-news-daily", testLogger())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
