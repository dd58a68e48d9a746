// Package cache provides the in-memory TTL cache backing reference
// data: picker lists that must render instantly while a refresh runs in
// the background.
package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe key-value cache with per-entry expiry.
// Expired entries are still readable once (served stale) so a picker
// can render while the owner queues a refresh.
type Cache[K comparable, V any] struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[K]entry[V]

	// now is swappable for tests.
	now func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// New creates a Cache with the given entry TTL. A zero TTL means
// entries never expire.
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		ttl:  ttl,
		data: make(map[K]entry[V]),
		now:  time.Now,
	}
}

// Set stores a value with a fresh TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = entry[V]{value: value, expiresAt: c.deadline()}
}

// Load imports a slice of items keyed by keyFunc.
func (c *Cache[K, V]) Load(items []V, keyFunc func(V) K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	deadline := c.deadline()
	for _, item := range items {
		c.data[keyFunc(item)] = entry[V]{value: item, expiresAt: deadline}
	}
}

// Get retrieves a value. stale reports whether the entry has outlived
// its TTL; the caller decides whether to refresh.
func (c *Cache[K, V]) Get(key K) (value V, ok bool, stale bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[key]
	if !ok {
		var zero V
		return zero, false, false
	}
	return e.value, true, c.expired(e)
}

// Values returns all cached values, fresh or stale.
func (c *Cache[K, V]) Values() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()

	values := make([]V, 0, len(c.data))
	for _, e := range c.data {
		values = append(values, e.value)
	}
	return values
}

// Del removes an entry.
func (c *Cache[K, V]) Del(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Len returns the number of entries, including stale ones.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[K]entry[V])
}

// Sweep drops every stale entry and returns how many were removed.
func (c *Cache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.data {
		if c.expired(e) {
			delete(c.data, k)
			removed++
		}
	}
	return removed
}

func (c *Cache[K, V]) deadline() time.Time {
	if c.ttl == 0 {
		return time.Time{}
	}
	return c.now().Add(c.ttl)
}

func (c *Cache[K, V]) expired(e entry[V]) bool {
	return !e.expiresAt.IsZero() && c.now().After(e.expiresAt)
}
