package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache(time.Minute)
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
	assert.Equal(t, ChartCacheStats{Hits: 1, Misses: 1, Entries: 1}, cache.Stats())
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache(time.Minute)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", render)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = cache.GetOrRender("key", render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, err := cache.GetOrRender("key", func() (string, error) { return "", errors.New("boom") })
	require.Error(t, err)
	assert.Zero(t, cache.Stats().Entries)
}

func TestChartCachePurgeAndDisabled(t *testing.T) {
	cache := NewChartCache(time.Minute)
	_, _ = cache.GetOrRender("key", func() (string, error) { return "a", nil })
	cache.Purge()
	assert.Zero(t, cache.Stats().Entries)

	disabled := NewChartCache(0)
	calls := 0
	for i := 0; i < 3; i++ {
		_, _ = disabled.GetOrRender("key", func() (string, error) { calls++; return "b", nil })
	}
	assert.Equal(t, 3, calls)
}

func TestConfigHashIsDeterministic(t *testing.T) {
	a := configHash(map[string]any{"title": "Supply", "metric": "orders"})
	b := configHash(map[string]any{"metric": "orders", "title": "Supply"})
	assert.Equal(t, a, b)
	assert.Equal(t, "empty", configHash(nil))
}

func TestRedisChartCacheDegradesWhenUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	telemetry := &recordingTelemetry{}
	cache := NewRedisChartCache(client, time.Minute, telemetry)
	html, err := cache.GetOrRender("aqua.widget.supply_trend", func() (string, error) {
		return "<div>chart</div>", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "<div>chart</div>", html)
	assert.True(t, telemetry.has("dashboard.chart_cache.error"))
}

func TestRedisChartCacheWithoutClientRenders(t *testing.T) {
	var cache *RedisChartCache
	html, err := cache.GetOrRender("key", func() (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Equal(t, "x", html)
}
