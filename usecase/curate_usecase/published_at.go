package curate_usecase

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/Yaz-U/ai-news-daily/domain"
)

var colonOffset = regexp.MustCompile(`([+-]\d{2}):(\d{2})$`)

// rfc5322Layouts backs up net/mail for feeds that drift from the RFC.
var rfc5322Layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
}

// isoZonedLayouts expect the offset without a colon.
var isoZonedLayouts = []string{
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02T15:04Z0700",
}

// isoNaiveLayouts carry no offset and are read in the configured location.
var isoNaiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ResolvePublishedAt returns the entry's publication instant in UTC, or nil
// when no field parses. Parsed fields win over text; published wins over
// updated.
func ResolvePublishedAt(entry domain.FeedEntry, loc *time.Location) *time.Time {
	for _, t := range []*time.Time{entry.PublishedParsed, entry.UpdatedParsed} {
		if t != nil && !t.IsZero() {
			utc := t.UTC()
			return &utc
		}
	}

	for _, s := range []string{entry.Published, entry.Updated} {
		if t, ok := ParseDateText(s, loc); ok {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

// ParseDateText tries the comma/weekday encoding, then ISO 8601 with a
// colon-less offset.
func ParseDateText(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	if t, err := mail.ParseDate(s); err == nil {
		return t, true
	}
	for _, layout := range rfc5322Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	iso := colonOffset.ReplaceAllString(s, "$1$2")
	for _, layout := range isoZonedLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	for _, layout := range isoNaiveLayouts {
		if t, err := time.ParseInLocation(layout, iso, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
