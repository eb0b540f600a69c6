package repository

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process CacheRepository backed by go-cache.
type MemoryCache struct {
	store *cache.Cache
}

func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		store: cache.New(defaultTTL, cleanupInterval),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	val, ok := m.store.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := val.([]byte)
	return b, ok
}

// Set stores value under key. A zero ttl uses the cache default.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = cache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}
