package room

import (
	"sync"
	"time"
)

// dedupCache is a bounded, TTL-based duplicate-submission filter. It
// replaces the "hash key in an ever-growing map" anti-pattern flagged in
// the Design Notes with a capacity-bounded ring: once full, the oldest
// entry is evicted regardless of its TTL. Safe for concurrent use:
// the room's action-dedup instance is called from Submit on whatever
// goroutine submits, while the bot scheduler's separate instance is
// called from the room's consumer goroutine.
type dedupCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	expiry   map[string]time.Time
	order    []string
}

func newDedupCache(ttl time.Duration, capacity int) *dedupCache {
	return &dedupCache{
		ttl:      ttl,
		capacity: capacity,
		expiry:   make(map[string]time.Time, capacity),
	}
}

// Seen reports whether key was already recorded within the TTL window.
// If not, it records key and returns false.
func (c *dedupCache) Seen(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if exp, ok := c.expiry[key]; ok && now.Before(exp) {
		return true
	}

	c.expiry[key] = now.Add(c.ttl)
	c.order = append(c.order, key)
	if len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.expiry, oldest)
	}
	return false
}
