// Package cache provides the time-bounded result cache shared by the
// analysis and matching operations. The cache is an explicitly constructed
// instance passed by dependency injection, never package-level state.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long a reasoning result stays valid.
const DefaultTTL = 5 * time.Minute

// entry is a cached value with its absolute expiry.
type entry struct {
	expiry time.Time
	value  any
}

// ResultCache is a thread-safe TTL cache for reasoning results. Expiry is
// lazy: expired entries are removed on the Get that observes them, there is
// no background sweep.
type ResultCache struct {
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
}

// New creates a ResultCache with the given TTL. A zero TTL uses DefaultTTL.
func New(ttl time.Duration) *ResultCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// AnalyzeKey builds the cache key for single-creator analysis.
func AnalyzeKey(creatorID string) string {
	return "analyze:" + creatorID
}

// MatchKey builds the cache key for matching. The limit is part of the key
// so the same entity matched with different limits does not collide.
func MatchKey(entityID string, limit int) string {
	return fmt.Sprintf("match:%s-%d", entityID, limit)
}

// Get returns the cached value for a key. Entries past their expiry are
// removed and reported as misses.
func (c *ResultCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiry) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores a value under a key for the cache TTL.
func (c *ResultCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:  value,
		expiry: c.now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Invalidate removes every entry whose key contains the substring. Returns
// the number of entries removed.
func (c *ResultCache) Invalidate(substring string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.Contains(key, substring) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// InvalidateCreator purges all cached results, insight and match alike, for
// one creator. Called after new sale data arrives.
func (c *ResultCache) InvalidateCreator(creatorID string) int {
	return c.Invalidate(creatorID)
}

// Size returns the number of entries, counting ones not yet lazily expired.
func (c *ResultCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
