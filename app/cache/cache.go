package cache

import (
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Tags used to group cache entries for selective invalidation.
const (
	TagEpisodes    = "episodes"
	TagMetadata    = "metadata"
	TagTranscripts = "transcripts"
)

type entry struct {
	value     any
	tags      []string
	expiresAt time.Time
}

// Cache is an in-process memoization layer with time-based expiry and
// tag-group invalidation. Concurrent misses on the same key compute once;
// computation is expected to be idempotent.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
}

func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// GetOrCompute returns the cached value for key, computing and storing it
// when absent or expired. The compute result is cached only on success.
func (c *Cache) GetOrCompute(key string, tags []string, compute func() (any, error)) (any, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while we waited
		if value, ok := c.Get(key); ok {
			return value, nil
		}

		value, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{
			value:     value,
			tags:      tags,
			expiresAt: time.Now().Add(c.ttl),
		}
		c.mu.Unlock()

		return value, nil
	})

	return value, err
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops every entry carrying the given tag and returns the number
// of entries removed.
func (c *Cache) Invalidate(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if slices.Contains(e.tags, tag) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			count++
		}
	}
	return count
}
