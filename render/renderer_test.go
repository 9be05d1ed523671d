package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yaz-U/ai-news-daily/domain"
)

var jst = time.FixedZone("JST", 9*60*60)

func newRenderer(t *testing.T) *PageRenderer {
	t.Helper()
	r, err := NewPageRenderer(Options{
		Location:    jst,
		HistoryTabs: 8,
		Triggers:    []string{"06:00", "12:00", "16:00", "20:00"},
	})
	require.NoError(t, err)
	return r
}

func snapshot(ts time.Time, summary string, articles int) *domain.Snapshot {
	top := make([]domain.TopArticle, articles)
	for i := range top {
		top[i] = domain.TopArticle{
			Rank:   i + 1,
			Title:  fmt.Sprintf("Article %d", i+1),
			Source: "Source",
			URL:    fmt.Sprintf("https://example.com/%d", i+1),
			Point:  "point",
		}
	}
	return &domain.Snapshot{
		Timestamp: ts,
		TimeSlot:  domain.TimeSlotFor(ts),
		Summary: domain.SummaryResult{
			NewsSummary: summary,
			TopArticles: top,
		},
	}
}

func TestPageRenderer_Render(t *testing.T) {
	r := newRenderer(t)
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, jst)
	current := snapshot(now, "今日のAIニュース", 10)
	current.Summary.OpinionSummary = "見解"
	current.Commentary = []domain.CommentaryPick{{Headline: "【衝撃】見出し", Body: "本文", SourceTitle: "元記事"}}

	var history []*domain.Snapshot
	for i := 0; i < 12; i++ {
		history = append(history, snapshot(now.Add(-time.Duration(i)*6*time.Hour), strings.Repeat("史", 250), 10))
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, current, history))
	page := buf.String()

	assert.Contains(t, page, `content="1800"`)
	assert.Contains(t, page, "昼版")
	assert.Contains(t, page, "2025年03月03日 12:00 JST")
	assert.Contains(t, page, "今日のAIニュース")
	assert.Contains(t, page, "【衝撃】見出し")
	assert.Contains(t, page, `href="#"`)
	assert.Contains(t, page, "朝 6:00 JST")
	assert.Contains(t, page, "夜 20:00 JST")

	assert.Equal(t, 8, strings.Count(page, `<button class="hist-tab`))
	assert.Equal(t, 1, strings.Count(page, `class="hist-tab active"`))
	assert.Contains(t, page, strings.Repeat("史", 200)+"...")
	assert.NotContains(t, page, strings.Repeat("史", 201))
	assert.Equal(t, 8*5, strings.Count(page, `class="hist-article"`))
}

func TestPageRenderer_Placeholders(t *testing.T) {
	r := newRenderer(t)
	current := &domain.Snapshot{Timestamp: time.Date(2025, 3, 3, 21, 0, 0, 0, jst)}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, current, nil))
	page := buf.String()

	assert.Contains(t, page, placeholderLoading)
	assert.Contains(t, page, "夜版")
	assert.Contains(t, page, "解説記事を生成中")
	assert.Contains(t, page, "記事がありません")
}

func TestPageRenderer_EscapesFeedContent(t *testing.T) {
	r := newRenderer(t)
	current := snapshot(time.Date(2025, 3, 3, 7, 0, 0, 0, jst), "<script>alert(1)</script>", 1)
	current.Summary.TopArticles[0].URL = "javascript:alert(1)"

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, current, nil))
	page := buf.String()

	assert.NotContains(t, page, "<script>alert(1)</script>")
	assert.Contains(t, page, "&lt;script&gt;")
	assert.NotContains(t, page, `href="javascript:alert(1)"`)
}

func TestPageRenderer_NilSnapshot(t *testing.T) {
	r := newRenderer(t)
	assert.ErrorIs(t, r.Render(&bytes.Buffer{}, nil, nil), domain.ErrPublish)
}
