// Package cache holds a bounded, TTL-evicting response cache keyed by
// normalized query. It replaces the usual process-lifetime map: entries
// expire after a fixed duration and the oldest insertion is evicted once
// the capacity threshold is hit.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/sells-group/leadgen-cli/internal/model"
)

type entry struct {
	result   *model.Result
	key      string
	inserted time.Time
}

// Cache is a fixed-capacity result cache safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]*entry
	order    []string // insertion order, oldest first
	ttl      time.Duration
	capacity int
	now      func() time.Time
}

// New creates a cache with the given TTL and capacity. A capacity of zero
// disables caching entirely.
func New(ttl time.Duration, capacity int) *Cache {
	return &Cache{
		entries:  make(map[string]*entry),
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
	}
}

// Get returns the cached result for a query, or nil when absent or expired.
func (c *Cache) Get(query string) *model.Result {
	key := normalize(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.now().Sub(e.inserted) > c.ttl {
		c.remove(key)
		return nil
	}
	return e.result
}

// Put stores a result, evicting the oldest insertion if the cache is full.
// Re-inserting an existing key refreshes its TTL and its insertion slot.
func (c *Cache) Put(query string, result *model.Result) {
	if c.capacity <= 0 {
		return
	}
	key := normalize(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.remove(key)
	}
	for len(c.entries) >= c.capacity {
		c.remove(c.order[0])
	}

	c.entries[key] = &entry{result: result, key: key, inserted: c.now()}
	c.order = append(c.order, key)
}

// Len reports the number of live entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove deletes a key from both the map and the order slice. Caller
// holds the lock.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
