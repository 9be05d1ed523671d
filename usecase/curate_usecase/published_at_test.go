package curate_usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yaz-U/ai-news-daily/domain"
)

var jst = time.FixedZone("JST", 9*60*60)

func TestParseDateText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{
			name:  "rfc5322 with numeric zone",
			input: "Mon, 03 Mar 2025 09:30:00 +0000",
			want:  time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "rfc5322 with GMT",
			input: "Sat, 01 Mar 2025 09:30:00 GMT",
			want:  time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "iso with colon offset",
			input: "2025-03-01T09:30:00+09:00",
			want:  time.Date(2025, 3, 1, 0, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "iso with Z",
			input: "2025-03-01T09:30:00Z",
			want:  time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "iso with fraction",
			input: "2025-03-01T09:30:00.250-05:00",
			want:  time.Date(2025, 3, 1, 14, 30, 0, 250_000_000, time.UTC),
			ok:    true,
		},
		{
			name:  "naive iso read in configured zone",
			input: "2025-03-01 09:30:00",
			want:  time.Date(2025, 3, 1, 0, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "surrounding whitespace",
			input: "  2025-03-01T09:30:00Z\n",
			want:  time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
			ok:    true,
		},
		{name: "garbage", input: "yesterday-ish", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDateText(tt.input, jst)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			}
		})
	}
}

func TestResolvePublishedAt(t *testing.T) {
	parsed := time.Date(2025, 3, 1, 12, 0, 0, 0, jst)
	updated := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("parsed field wins over text", func(t *testing.T) {
		got := ResolvePublishedAt(domain.FeedEntry{
			Published:       "Mon, 03 Mar 2025 09:30:00 +0000",
			PublishedParsed: &parsed,
		}, jst)
		require.NotNil(t, got)
		assert.True(t, parsed.Equal(*got))
		assert.Equal(t, time.UTC, got.Location())
	})

	t.Run("updated parsed used when published missing", func(t *testing.T) {
		got := ResolvePublishedAt(domain.FeedEntry{UpdatedParsed: &updated}, jst)
		require.NotNil(t, got)
		assert.True(t, updated.Equal(*got))
	})

	t.Run("updated text used when published text fails", func(t *testing.T) {
		got := ResolvePublishedAt(domain.FeedEntry{
			Published: "not a date",
			Updated:   "2025-03-02T00:00:00+00:00",
		}, jst)
		require.NotNil(t, got)
		assert.True(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC).Equal(*got))
	})

	t.Run("nothing parses", func(t *testing.T) {
		assert.Nil(t, ResolvePublishedAt(domain.FeedEntry{Published: "??"}, jst))
	})
}
