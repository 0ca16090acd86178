// Package cache implements the in-memory response cache for the generation
// gateway: TTL-bounded entries keyed by a prompt fingerprint, with
// insertion-order (FIFO) eviction once the entry cap is reached.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// entry is a single cached response. An entry is never served after expiresAt.
type entry struct {
	response  string
	expiresAt time.Time
}

// ResponseCache is a capacity-bounded TTL cache for generated text.
// It is safe for concurrent use. State is process-lifetime only.
type ResponseCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]entry

	// order keeps keys in insertion order; the front is the oldest key.
	// Rewriting an existing key does not move it.
	order []string

	// now is swappable for tests.
	now func() time.Time
}

// New creates a ResponseCache whose entries expire ttl after insertion and
// which holds at most maxEntries entries.
func New(ttl time.Duration, maxEntries int) *ResponseCache {
	return &ResponseCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]entry),
		now:        time.Now,
	}
}

// Fingerprint derives the cache key for a (tool, prompt) pair: a sha256 hex
// digest, so semantically identical requests collide and the raw prompt never
// becomes a lookup key.
func Fingerprint(tool, prompt string) string {
	h := sha256.Sum256([]byte(tool + prompt))
	return hex.EncodeToString(h[:])
}

// Get returns the cached response for key and true on a hit. Expired or
// absent entries are a miss; expired entries are reaped on the next Set.
func (c *ResponseCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return "", false
	}
	return e.response, true
}

// Set stores response under key with a fresh TTL. Before inserting it purges
// every expired entry, then evicts the oldest-inserted entry if the cache is
// at capacity. Rewriting an existing key replaces the value but keeps the
// key's eviction position.
func (c *ResponseCache) Set(key, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.purgeExpired(now)

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxEntries {
			c.evictOldest()
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = entry{
		response:  response,
		expiresAt: now.Add(c.ttl),
	}
}

// Len returns the number of live entries, counting expired ones not yet reaped.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// purgeExpired removes every entry whose expiry has passed. Caller holds mu.
func (c *ResponseCache) purgeExpired(now time.Time) {
	kept := c.order[:0]
	for _, key := range c.order {
		e, ok := c.entries[key]
		if ok && now.Before(e.expiresAt) {
			kept = append(kept, key)
			continue
		}
		delete(c.entries, key)
	}
	c.order = kept
}

// evictOldest drops the entry at the front of the insertion queue.
// Caller holds mu.
func (c *ResponseCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}
