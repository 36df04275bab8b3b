package cache

import (
	"context"
	"time"

	"github.com/TwiN/gocache/v2"
)

const defaultMaxEntries = 10000

// MemoryCache is an in-process LRU cache
type MemoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache creates a MemoryCache holding at most maxEntries values
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	c := gocache.NewCache().
		WithMaxSize(maxEntries).
		WithEvictionPolicy(gocache.LeastRecentlyUsed)
	_ = c.StartJanitor()
	return &MemoryCache{c: c}
}

// Get implements the Cache interface
func (m *MemoryCache) Get(_ context.Context, key string, target any) (bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		return false, nil
	}
	if err := unmarshal(data, target); err != nil {
		return false, err
	}
	return true, nil
}

// Set implements the Cache interface
func (m *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := marshal(value)
	if err != nil {
		return err
	}
	if ttl > 0 {
		m.c.SetWithTTL(key, data, ttl)
	} else {
		m.c.Set(key, data)
	}
	return nil
}

// Delete implements the Cache interface
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

// Close implements the Cache interface
func (m *MemoryCache) Close() error {
	m.c.StopJanitor()
	return nil
}
