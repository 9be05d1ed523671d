package domain

import (
	"time"
)

// FeedSource is one entry of the feed registry.
type FeedSource struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	URL  string `json:"url" yaml:"url" mapstructure:"url"`
}

// FeedEntry holds the raw fields of one syndicated item before cleaning.
type FeedEntry struct {
	Title           string
	Link            string
	Description     string
	Content         string
	Published       string
	Updated         string
	PublishedParsed *time.Time
	UpdatedParsed   *time.Time
}

// FetchedFeed is the result of pulling one source.
type FetchedFeed struct {
	Source    FeedSource
	Title     string
	Entries   []FeedEntry
	FetchedAt time.Time
}

// Article is a cleaned, accepted entry. PublishedAt is nil when no date field
// could be parsed.
type Article struct {
	Source      string     `json:"source"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Summary     string     `json:"summary"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	FetchedAt   time.Time  `json:"fetched_at"`
}

// HasKnownDate reports whether the publication instant was resolved.
func (a Article) HasKnownDate() bool {
	return a.PublishedAt != nil
}

// SourceStats counts what happened to one source's entries during a run.
type SourceStats struct {
	Source     string
	Accepted   int
	SkippedOld int
	Irrelevant int
	Failed     bool
}
