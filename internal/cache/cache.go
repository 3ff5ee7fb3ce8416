// Package cache holds computed page data keyed by request path so listing
// reads can skip storage until a mutation marks the path stale.
package cache

import (
	"strings"
	"sync"
)

// PathCache is a concurrency-safe store of page payloads keyed by full
// request path (path plus raw query). Invalidation operates on the logical
// route: invalidating "/dashboard/invoices" drops every variant of that page
// regardless of query string.
type PathCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func New() *PathCache {
	return &PathCache{entries: make(map[string]any)}
}

// Get returns the cached payload for key, if fresh.
func (c *PathCache) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	return v, ok
}

// Put stores a payload under key.
func (c *PathCache) Put(key string, v any) {
	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
}

// Invalidate drops every entry for the given route path: the bare path and
// any keyed query-string variants of it.
func (c *PathCache) Invalidate(path string) {
	prefix := path + "?"
	c.mu.Lock()
	for k := range c.entries {
		if k == path || strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// InvalidateAll clears the cache.
func (c *PathCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]any)
	c.mu.Unlock()
}

// Len reports the number of cached entries.
func (c *PathCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
