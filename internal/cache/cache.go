// Package cache provides the in-process TTL cache used to accelerate
// repeated task-list reads. Entries are keyed by owner identity and query
// shape, carry a creation timestamp, and are considered absent once older
// than the fixed TTL. Eviction is pure TTL: no size bound, no LRU.
package cache

import (
	"sync"
	"time"
)

// Cache is the contract the service layer consumes. Lookups never block on
// the underlying repository; the caller is responsible for the cache-aside
// fallback.
type Cache interface {
	// Get returns a previously stored value if present and not older than
	// the TTL; ok reports whether it was a hit.
	Get(key string) (value any, ok bool)

	// Put stores a value with a freshly stamped creation time, overwriting
	// any prior entry for the same key. Concurrent Puts to the same key
	// race with last-write-wins semantics, which is acceptable here.
	Put(key string, value any)

	// Invalidate removes the entry for the given key, if any.
	Invalidate(key string)

	// InvalidateAll removes every entry.
	InvalidateAll()

	// Close stops the background sweep, if one is running.
	Close()
}

type entry struct {
	value    any
	storedAt time.Time
}

// TTLCache is a mutex-guarded map with fixed time-to-live expiry.
// Expired entries are treated as absent on Get whether or not they have
// been physically purged; an optional background sweep reclaims them.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry

	ttl      time.Duration
	timeFunc func() time.Time // Injectable for testing

	stopOnce sync.Once
	stopCh   chan struct{}
}

// Ensure TTLCache implements Cache interface
var _ Cache = (*TTLCache)(nil)

// New creates a TTLCache with the given entry lifetime. If sweepInterval is
// positive, a background goroutine periodically drops expired entries;
// otherwise expiry is purely lazy.
func New(ttl, sweepInterval time.Duration) *TTLCache {
	c := &TTLCache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		timeFunc: time.Now,
		stopCh:   make(chan struct{}),
	}

	if sweepInterval > 0 {
		go c.sweepLoop(sweepInterval)
	}

	return c
}

// Get implements Cache.Get.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.expired(e) {
		// Lazy expiry: purge on observation. Re-check under the write
		// lock in case a fresh Put raced in between.
		c.mu.Lock()
		if current, ok := c.entries[key]; ok && c.expired(current) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Put implements Cache.Put.
func (c *TTLCache) Put(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.timeFunc()}
	c.mu.Unlock()
}

// Invalidate implements Cache.Invalidate.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll implements Cache.InvalidateAll.
func (c *TTLCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Close implements Cache.Close. Safe to call more than once.
func (c *TTLCache) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

// Len returns the number of physically present entries, expired or not.
// Used by tests and metrics.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TTLCache) expired(e entry) bool {
	return c.timeFunc().Sub(e.storedAt) >= c.ttl
}

// sweepLoop periodically drops expired entries until Close is called.
func (c *TTLCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopCh:
			return
		}
	}
}

func (c *TTLCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, key)
		}
	}
}
