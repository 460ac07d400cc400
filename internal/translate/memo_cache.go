package translate

import (
	"sync"
	"time"
)

// MemoCache is a small in-memory key->(value, expiry) table layered in front
// of the persistent translation cache. Expired entries are evicted lazily on
// lookup; there is no background sweeper.
type MemoCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoEntry
	now     func() time.Time // injectable for tests
}

type memoEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoCache(ttl time.Duration) *MemoCache {
	return &MemoCache{
		ttl:     ttl,
		entries: make(map[string]memoEntry),
		now:     time.Now,
	}
}

// Get returns the cached value for key if present and not expired.
func (c *MemoCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.value, true
}

// Set stores value under key for the cache's TTL.
func (c *MemoCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoEntry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Clear drops every entry.
func (c *MemoCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoEntry)
}
