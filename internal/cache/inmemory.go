package cache

import (
	"context"
	"time"

	goCache "github.com/patrickmn/go-cache"

	"github.com/billcraft/billcraft/internal/logger"
)

// DefaultExpiration is the default expiration time for cache entries
const DefaultExpiration = goCache.NoExpiration

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 1 * time.Hour

// InMemoryCache implements the Cache interface using github.com/patrickmn/go-cache
type InMemoryCache struct {
	cache *goCache.Cache
	log   *logger.Logger
}

// Global cache instance
var globalCache *InMemoryCache

// Initialize sets up the global cache instance
func Initialize(log *logger.Logger) Cache {
	if globalCache == nil {
		globalCache = &InMemoryCache{
			cache: goCache.New(DefaultExpiration, DefaultCleanupInterval),
			log:   log,
		}
	}
	return globalCache
}

// NewInMemoryCache creates a standalone InMemoryCache instance, used by
// components that need their own lifetime (tests in particular)
func NewInMemoryCache(log *logger.Logger) Cache {
	return &InMemoryCache{
		cache: goCache.New(DefaultExpiration, DefaultCleanupInterval),
		log:   log,
	}
}

// Get retrieves a value from the cache
func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// Set adds a value to the cache with the specified expiration
func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	c.cache.Set(key, value, expiration)
}

// SetIfAbsent adds a value only when absent. go-cache's Add fails when the
// key exists, which gives the write-once semantics.
func (c *InMemoryCache) SetIfAbsent(_ context.Context, key string, value interface{}, expiration time.Duration) bool {
	return c.cache.Add(key, value, expiration) == nil
}

// Delete removes a key from the cache
func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

// Flush removes all items from the cache
func (c *InMemoryCache) Flush(_ context.Context) {
	c.cache.Flush()
}
