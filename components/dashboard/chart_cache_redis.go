package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	chartCacheKeyPrefix = "dashboard:chart:"
	redisCacheTimeout   = 2 * time.Second
)

// RedisChartCache shares rendered chart HTML across processes. Redis failures
// degrade to rendering without caching.
type RedisChartCache struct {
	client    redis.UniversalClient
	ttl       time.Duration
	telemetry Telemetry
}

// NewRedisChartCache wraps an existing client.
func NewRedisChartCache(client redis.UniversalClient, ttl time.Duration, telemetry Telemetry) *RedisChartCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisChartCache{
		client:    client,
		ttl:       ttl,
		telemetry: normalizeTelemetry(telemetry),
	}
}

// GetOrRender returns the cached entry or renders and stores a new one.
func (c *RedisChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.client == nil {
		return render()
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisCacheTimeout)
	defer cancel()

	cacheKey := chartCacheKeyPrefix + key
	html, err := c.client.Get(ctx, cacheKey).Result()
	switch {
	case err == nil:
		return html, nil
	case !errors.Is(err, redis.Nil):
		c.telemetry.Record(ctx, "dashboard.chart_cache.error", map[string]any{
			"op":    "get",
			"error": err.Error(),
		})
	}

	html, err = render()
	if err != nil {
		return "", err
	}
	if err := c.client.Set(ctx, cacheKey, html, c.ttl).Err(); err != nil {
		c.telemetry.Record(ctx, "dashboard.chart_cache.error", map[string]any{
			"op":    "set",
			"error": fmt.Sprintf("redis set failed: %v", err),
		})
	}
	return html, nil
}
