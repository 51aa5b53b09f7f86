package memory

import (
	"context"
	"sync"
	"time"

	portidem "github.com/alanyang/tailor-flow/internal/port/idempotency"
)

var _ portidem.Store = (*Cache)(nil)

type cacheEntry struct {
	route     string
	value     []byte
	expiresAt time.Time
}

// Cache is a process-local idempotency store. It suits a single instance and tests;
// entries vanish on restart.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *Cache) Check(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *Cache) Store(_ context.Context, key, route string, response []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expiresAt) {
		return nil
	}
	c.entries[key] = cacheEntry{
		route:     route,
		value:     append([]byte(nil), response...),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	var n int64
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			n++
		}
	}
	return n, nil
}
