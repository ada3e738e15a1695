// Package cache defines the ephemeral-state boundary used for current-bid
// lookups, item snapshots, lock tokens and rate-limit counters. Entries carry
// TTLs and are reconstructible from durable storage on miss; losing the whole
// cache must never corrupt the durable bid/item state.
package cache

import (
	"strconv"
	"sync"
	"time"
)

// AuctionCache is the contract a cache backend must satisfy. The operation set
// mirrors what the admission path needs: conditional set for locks,
// compare-and-delete for fenced release, atomic increment with
// TTL-on-first-increment for windowed counters, and plain get/set with TTL.
type AuctionCache interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string, ttl time.Duration) error
	// SetIfAbsent stores value only when key has no live entry. Returns
	// whether the set happened.
	SetIfAbsent(key, value string, ttl time.Duration) (bool, error)
	// CompareAndDelete removes key only when its current value equals value.
	// Returns whether the delete happened.
	CompareAndDelete(key, value string) (bool, error)
	// Increment atomically adds one to the counter at key and returns the new
	// count. The TTL is applied when the counter is created, so the window
	// starts at the first event.
	Increment(key string, ttl time.Duration) (int64, error)
	Delete(key string) error
}

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a concurrency-safe in-memory AuctionCache. Expired entries
// are dropped lazily on access.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// SetClock overrides the cache's time source. Intended for tests only.
func (c *MemoryCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// live returns the entry for key if present and not expired, pruning it
// otherwise. Callers must hold the mutex.
func (c *MemoryCache) live(key string) (entry, bool) {
	e, ok := c.entries[key]
	if !ok {
		return entry{}, false
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return entry{}, false
	}
	return e, true
}

func (c *MemoryCache) deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

// Get returns the live value stored at key.
func (c *MemoryCache) Get(key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.live(key)
	if !ok {
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores value at key with the given TTL (<=0 means no expiry).
func (c *MemoryCache) Set(key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: c.deadline(ttl)}
	return nil
}

// SetIfAbsent stores value only when no live entry exists at key.
func (c *MemoryCache) SetIfAbsent(key, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.live(key); ok {
		return false, nil
	}
	c.entries[key] = entry{value: value, expiresAt: c.deadline(ttl)}
	return true, nil
}

// CompareAndDelete removes key only when its live value equals value.
func (c *MemoryCache) CompareAndDelete(key, value string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.live(key)
	if !ok || e.value != value {
		return false, nil
	}
	delete(c.entries, key)
	return true, nil
}

// Increment adds one to the counter at key, creating it with the given TTL.
func (c *MemoryCache) Increment(key string, ttl time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.live(key)
	if !ok {
		c.entries[key] = entry{value: "1", expiresAt: c.deadline(ttl)}
		return 1, nil
	}

	n, err := strconv.ParseInt(e.value, 10, 64)
	if err != nil {
		// Non-numeric value at a counter key; restart the window.
		c.entries[key] = entry{value: "1", expiresAt: c.deadline(ttl)}
		return 1, nil
	}
	n++
	e.value = strconv.FormatInt(n, 10)
	c.entries[key] = e
	return n, nil
}

// Delete removes key unconditionally.
func (c *MemoryCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}
