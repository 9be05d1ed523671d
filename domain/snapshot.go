package domain

import (
	"time"
)

// TimeSlot is the coarse label of the hour a run happened in.
type TimeSlot string

const (
	TimeSlotMorning TimeSlot = "morning"
	TimeSlotNoon    TimeSlot = "noon"
	TimeSlotEvening TimeSlot = "evening"
	TimeSlotNight   TimeSlot = "night"
)

// MaxSnapshotArticles caps the raw articles folded into a snapshot.
const MaxSnapshotArticles = 15

// TimeSlotFor maps a local civil time to its slot: [5,11) morning,
// [11,15) noon, [15,18) evening, night otherwise.
func TimeSlotFor(t time.Time) TimeSlot {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 11:
		return TimeSlotMorning
	case hour >= 11 && hour < 15:
		return TimeSlotNoon
	case hour >= 15 && hour < 18:
		return TimeSlotEvening
	default:
		return TimeSlotNight
	}
}

// Label returns the display label used on the published page.
func (s TimeSlot) Label() string {
	switch s {
	case TimeSlotMorning:
		return "朝"
	case TimeSlotNoon:
		return "昼"
	case TimeSlotEvening:
		return "夕方"
	case TimeSlotNight:
		return "夜"
	default:
		return string(s)
	}
}

// Snapshot is one persisted run result. It is never modified after it is
// written.
type Snapshot struct {
	RunID       string           `json:"run_id"`
	Timestamp   time.Time        `json:"timestamp"`
	TimeSlot    TimeSlot         `json:"time_slot"`
	Summary     SummaryResult    `json:"summary"`
	Commentary  []CommentaryPick `json:"commentary"`
	RawArticles []Article        `json:"raw_articles"`
	Generation  Generation       `json:"generation"`
}

// NewSnapshot folds a run's output into a snapshot, keeping at most
// MaxSnapshotArticles articles.
func NewSnapshot(runID string, now time.Time, summary SummaryResult, commentary []CommentaryPick, articles []Article, gen Generation) *Snapshot {
	raw := articles
	if len(raw) > MaxSnapshotArticles {
		raw = raw[:MaxSnapshotArticles]
	}
	if commentary == nil {
		commentary = []CommentaryPick{}
	}
	copied := make([]Article, len(raw))
	copy(copied, raw)

	return &Snapshot{
		RunID:       runID,
		Timestamp:   now,
		TimeSlot:    TimeSlotFor(now),
		Summary:     summary,
		Commentary:  commentary,
		RawArticles: copied,
		Generation:  gen,
	}
}
