package rate_limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostRateLimiter_WaitForHost(t *testing.T) {
	tests := []struct {
		name    string
		urlStr  string
		wantErr bool
	}{
		{"valid https URL", "https://techcrunch.com/feed/", false},
		{"URL with path", "https://feed.infoq.com/ai-ml-data-eng", false},
		{"invalid URL", "not-a-url", true},
		{"empty URL", "", true},
	}

	limiter := NewHostRateLimiter(10 * time.Millisecond)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := limiter.WaitForHost(context.Background(), tt.urlStr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHostRateLimiter_SpacesSameHost(t *testing.T) {
	limiter := NewHostRateLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.WaitForHost(ctx, "https://example.com/a"))
	require.NoError(t, limiter.WaitForHost(ctx, "https://EXAMPLE.com/b"))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)

	// a different host is not delayed by example.com
	start = time.Now()
	require.NoError(t, limiter.WaitForHost(ctx, "https://other.example.org/feed"))
	assert.Less(t, time.Since(start), 40*time.Millisecond)

	assert.Equal(t, 2, limiter.Hosts())
}

func TestHostRateLimiter_ContextCancelled(t *testing.T) {
	limiter := NewHostRateLimiter(time.Hour)
	require.NoError(t, limiter.WaitForHost(context.Background(), "https://example.com/"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	assert.Error(t, limiter.WaitForHost(ctx, "https://example.com/"))
}

func TestHostRateLimiter_ZeroIntervalDisables(t *testing.T) {
	limiter := NewHostRateLimiter(0)
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.WaitForHost(context.Background(), "https://example.com/"))
	}
	assert.Equal(t, 0, limiter.Hosts())
}
