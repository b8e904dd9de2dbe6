package listview

import (
	"sync"
	"time"

	"newsbridge/internal/infra/upstream"
)

// DefaultTTL matches how long a fetched page stays fresh before the next
// request goes back to the backend.
const DefaultTTL = time.Minute

type cacheEntry struct {
	result  *upstream.ListResult
	expires time.Time
}

// Cache is a TTL cache of listing pages. Expired entries are dropped lazily
// on read and swept in bulk by the janitor.
type Cache struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCache builds a Cache. A non-positive ttl uses DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached result for key if present and unexpired.
func (c *Cache) Get(key string) (*upstream.ListResult, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		recordCache("miss")
		return nil, false
	}
	if time.Now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		recordCache("expired")
		return nil, false
	}
	recordCache("hit")
	return e.result, true
}

// Set stores a result under key for the cache TTL.
func (c *Cache) Set(key string, result *upstream.ListResult) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{result: result, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Clear drops every entry. Used by the refresh action.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// PurgeExpired removes entries past their TTL and reports how many were
// dropped. The janitor runs this periodically so abandoned filter
// combinations do not accumulate.
func (c *Cache) PurgeExpired() int {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	purged := 0
	for key, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, key)
			purged++
		}
	}
	return purged
}

// Len reports the number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
