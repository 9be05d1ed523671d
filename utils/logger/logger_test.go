package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}

func TestMultiHandler_FansOut(t *testing.T) {
	var infoBuf, errBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		nil,
		slog.NewJSONHandler(&errBuf, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	l := slog.New(h).With("run_id", "abc")

	l.Info("feed fetched", "source", "Wired")
	l.Error("upload failed")

	assert.Equal(t, 2, strings.Count(infoBuf.String(), "\n"))
	assert.Contains(t, infoBuf.String(), `"run_id":"abc"`)
	assert.Equal(t, 1, strings.Count(errBuf.String(), "\n"))
	assert.NotContains(t, errBuf.String(), "feed fetched")

	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewMultiHandler(slog.NewJSONHandler(&buf, nil))).WithGroup("feed")

	l.Info("stats", "accepted", 3)

	assert.Contains(t, buf.String(), `"feed":{"accepted":3}`)
}

func TestMonthlyFile_RollsOverByMonth(t *testing.T) {
	dir := t.TempDir()
	jst, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	mf, err := NewMonthlyFile(dir, "run", jst)
	require.NoError(t, err)
	defer mf.Close()

	mf.now = func() time.Time { return time.Date(2025, 1, 31, 14, 0, 0, 0, time.UTC) }
	_, err = mf.Write([]byte("january\n"))
	require.NoError(t, err)

	// 16:00 UTC on Jan 31 is already February in Tokyo
	mf.now = func() time.Time { return time.Date(2025, 1, 31, 16, 0, 0, 0, time.UTC) }
	_, err = mf.Write([]byte("february\n"))
	require.NoError(t, err)
	_, err = mf.Write([]byte("february again\n"))
	require.NoError(t, err)

	jan, err := os.ReadFile(filepath.Join(dir, "run_202501.log"))
	require.NoError(t, err)
	feb, err := os.ReadFile(filepath.Join(dir, "run_202502.log"))
	require.NoError(t, err)

	assert.Equal(t, "january\n", string(jan))
	assert.Equal(t, "february\nfebruary again\n", string(feb))
}

func TestInit_WritesStdoutAndFile(t *testing.T) {
	dir := t.TempDir()
	var stdout bytes.Buffer

	l, closer, err := Init(Options{
		Level:       "info",
		Format:      "text",
		ServiceName: "ai-news-daily",
		Component:   "scheduler",
		Dir:         dir,
		FilePrefix:  "scheduler",
		Location:    time.UTC,
		Stdout:      &stdout,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = closer.Close()
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	})

	l.Debug("hidden")
	l.Warn("next trigger computed", "wait_minutes", 42)

	assert.Contains(t, stdout.String(), "level=warn")
	assert.Contains(t, stdout.String(), "component=scheduler")
	assert.NotContains(t, stdout.String(), "hidden")

	matches, err := filepath.Glob(filepath.Join(dir, "scheduler_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"warn"`)
	assert.Contains(t, string(data), `"wait_minutes":42`)
	assert.Same(t, l, Logger)
}
