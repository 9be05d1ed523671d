// Package render turns snapshots into the published HTML page.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/utils/html_parser"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

const (
	refreshSeconds  = 1800
	historyArticles = 5
	excerptChars    = 200

	placeholderLoading = "データを取得中..."
	placeholderDash    = "-"
)

// Options controls what the page shows besides the snapshot itself.
type Options struct {
	Location    *time.Location
	HistoryTabs int
	Triggers    []string
}

type PageRenderer struct {
	tmpl *template.Template
	opts Options
}

func NewPageRenderer(opts Options) (*PageRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.HistoryTabs <= 0 {
		opts.HistoryTabs = 8
	}
	return &PageRenderer{tmpl: tmpl, opts: opts}, nil
}

type historyTab struct {
	Index    int
	Label    string
	Excerpt  string
	Active   bool
	Articles []domain.TopArticle
}

type pageView struct {
	RefreshSeconds int
	SlotLabel      string
	UpdatedAt      string
	NewsSummary    string
	OpinionSummary string
	Sentiment      domain.Sentiment
	TopArticles    []domain.TopArticle
	Commentary     []domain.CommentaryPick
	Tabs           []historyTab
	Schedule       []string
}

// Render writes the page. Missing fields are replaced by placeholders so a
// page is always produced.
func (r *PageRenderer) Render(w io.Writer, current *domain.Snapshot, history []*domain.Snapshot) error {
	if current == nil {
		return fmt.Errorf("%w: no snapshot to render", domain.ErrPublish)
	}
	if err := r.tmpl.Execute(w, r.buildView(current, history)); err != nil {
		return fmt.Errorf("%w: execute template: %v", domain.ErrPublish, err)
	}
	return nil
}

func (r *PageRenderer) buildView(current *domain.Snapshot, history []*domain.Snapshot) pageView {
	local := current.Timestamp.In(r.opts.Location)
	summary := current.Summary

	view := pageView{
		RefreshSeconds: refreshSeconds,
		SlotLabel:      slotOf(current).Label(),
		UpdatedAt:      local.Format("2006年01月02日 15:04 MST"),
		NewsSummary:    orDefault(summary.NewsSummary, placeholderLoading),
		OpinionSummary: orDefault(summary.OpinionSummary, placeholderLoading),
		Sentiment: domain.Sentiment{
			Positive: orDefault(summary.Sentiment.Positive, placeholderDash),
			Negative: orDefault(summary.Sentiment.Negative, placeholderDash),
			Neutral:  orDefault(summary.Sentiment.Neutral, placeholderDash),
		},
		TopArticles: summary.TopArticles,
		Schedule:    r.scheduleLabels(),
	}

	for _, pick := range current.Commentary {
		if pick.SourceURL == "" {
			pick.SourceURL = "#"
		}
		view.Commentary = append(view.Commentary, pick)
	}

	for i, snap := range history {
		if i == r.opts.HistoryTabs {
			break
		}
		if snap == nil {
			continue
		}
		articles := snap.Summary.TopArticles
		if len(articles) > historyArticles {
			articles = articles[:historyArticles]
		}
		view.Tabs = append(view.Tabs, historyTab{
			Index:    len(view.Tabs),
			Label:    snap.Timestamp.In(r.opts.Location).Format("01/02 15:04") + " " + slotOf(snap).Label(),
			Excerpt:  html_parser.TruncateRunes(snap.Summary.NewsSummary, excerptChars) + "...",
			Active:   len(view.Tabs) == 0,
			Articles: articles,
		})
	}

	return view
}

// scheduleLabels renders triggers as "朝 6:00 JST".
func (r *PageRenderer) scheduleLabels() []string {
	zone := time.Now().In(r.opts.Location).Format("MST")
	labels := make([]string, 0, len(r.opts.Triggers))
	for _, spec := range r.opts.Triggers {
		t, err := time.Parse("15:04", strings.TrimSpace(spec))
		if err != nil {
			continue
		}
		labels = append(labels, fmt.Sprintf("%s %d:%02d %s", domain.TimeSlotFor(t).Label(), t.Hour(), t.Minute(), zone))
	}
	return labels
}

func slotOf(snap *domain.Snapshot) domain.TimeSlot {
	if snap.TimeSlot != "" {
		return snap.TimeSlot
	}
	return domain.TimeSlotFor(snap.Timestamp)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
