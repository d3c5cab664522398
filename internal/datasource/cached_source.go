package datasource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
)

// CachedSource keeps recently fetched profiles in memory
type CachedSource struct {
	inner    PlayerSource
	cache    *cache.Cache
	ttl      time.Duration
	maxItems int

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	HitRatio float64 `json:"hit_ratio"`
	Items    int     `json:"items"`
}

// NewCachedSource wraps inner with a TTL cache. maxItems of 0 means unbounded.
func NewCachedSource(inner PlayerSource, ttl, cleanupInterval time.Duration, maxItems int) *CachedSource {
	return &CachedSource{
		inner:    inner,
		cache:    cache.New(ttl, cleanupInterval),
		ttl:      ttl,
		maxItems: maxItems,
	}
}

// FetchPlayer returns a cached profile or fetches and caches it
func (c *CachedSource) FetchPlayer(ctx context.Context, name string) (*models.PlayerProfile, error) {
	key := normalizeName(name)
	if cached, found := c.cache.Get(key); found {
		if profile, ok := cached.(models.PlayerProfile); ok {
			c.hits.Add(1)
			c.updateMetrics()
			profile.LastGames = append([]float64(nil), profile.LastGames...)
			return &profile, nil
		}
	}

	c.misses.Add(1)
	c.updateMetrics()

	profile, err := c.inner.FetchPlayer(ctx, name)
	if err != nil {
		return nil, err
	}
	c.store(key, profile)
	return profile, nil
}

// Refresh re-fetches the named players, replacing their cache entries.
// It returns how many were refreshed and the joined errors of the rest.
func (c *CachedSource) Refresh(ctx context.Context, names []string) (int, error) {
	var errs []error
	refreshed := 0
	for _, name := range names {
		profile, err := c.inner.FetchPlayer(ctx, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("refresh %s: %w", name, err))
			continue
		}
		c.store(normalizeName(name), profile)
		refreshed++
	}
	return refreshed, errors.Join(errs...)
}

// Invalidate drops a player's cache entry
func (c *CachedSource) Invalidate(name string) {
	c.cache.Delete(normalizeName(name))
}

// Stats returns cache statistics
func (c *CachedSource) Stats() CacheStats {
	hits, misses := c.hits.Load(), c.misses.Load()
	stats := CacheStats{Hits: hits, Misses: misses, Items: c.cache.ItemCount()}
	if total := hits + misses; total > 0 {
		stats.HitRatio = float64(hits) / float64(total)
	}
	return stats
}

// Name returns the name of the wrapped data source
func (c *CachedSource) Name() string {
	return "cached_" + c.inner.Name()
}

// Ping delegates to the wrapped source
func (c *CachedSource) Ping(ctx context.Context) error {
	return c.inner.Ping(ctx)
}

// store copies the profile so callers cannot mutate cached state.
func (c *CachedSource) store(key string, profile *models.PlayerProfile) {
	if c.maxItems > 0 && c.cache.ItemCount() >= c.maxItems {
		c.cache.DeleteExpired()
		if c.cache.ItemCount() >= c.maxItems {
			return
		}
	}
	copied := *profile
	copied.LastGames = append([]float64(nil), profile.LastGames...)
	c.cache.Set(key, copied, c.ttl)
}

func (c *CachedSource) updateMetrics() {
	metrics.UpdateCacheHitRatio(c.Stats().HitRatio)
}
