package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache returns a cache with a controllable clock.
func newTestCache(ttl time.Duration, maxEntries int) (*ResponseCache, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := New(ttl, maxEntries)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := Fingerprint("emails", "write me an email")
	b := Fingerprint("emails", "write me an email")
	c := Fingerprint("whatsapp", "write me an email")

	assert.Equal(t, a, b, "identical (tool, prompt) pairs collide")
	assert.NotEqual(t, a, c, "tool is part of the fingerprint")
	assert.Len(t, a, 64, "sha256 hex digest")
}

func TestResponseCache_HitReturnsStoredText(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(10*time.Minute, 100)

	c.Set("key", "generated text")

	got, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "generated text", got)
}

func TestResponseCache_MissOnAbsentKey(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(10*time.Minute, 100)

	_, ok := c.Get("never-set")
	assert.False(t, ok)
}

func TestResponseCache_ExpiredEntryMisses(t *testing.T) {
	t.Parallel()

	c, now := newTestCache(10*time.Minute, 100)

	c.Set("key", "text")
	*now = now.Add(10*time.Minute + time.Second)

	_, ok := c.Get("key")
	assert.False(t, ok, "an entry is never served after its expiry")
}

func TestResponseCache_TTLRunsFromInsertionNotAccess(t *testing.T) {
	t.Parallel()

	c, now := newTestCache(10*time.Minute, 100)

	c.Set("key", "text")
	*now = now.Add(9 * time.Minute)
	_, ok := c.Get("key")
	require.True(t, ok, "reads within the TTL hit")

	*now = now.Add(2 * time.Minute)
	_, ok = c.Get("key")
	assert.False(t, ok, "the read did not extend the validity period")
}

func TestResponseCache_CapacityEvictsOldestInserted(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(10*time.Minute, 3)

	c.Set("k1", "v1")
	c.Set("k2", "v2")
	c.Set("k3", "v3")
	c.Set("k4", "v4")

	_, ok := c.Get("k1")
	assert.False(t, ok, "oldest-inserted key was evicted")

	for _, key := range []string{"k2", "k3", "k4"} {
		_, ok := c.Get(key)
		assert.True(t, ok, "key %s survives", key)
	}
	assert.Equal(t, 3, c.Len())
}

func TestResponseCache_RewriteKeepsEvictionOrder(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(10*time.Minute, 2)

	c.Set("k1", "v1")
	c.Set("k2", "v2")
	c.Set("k1", "v1-updated") // rewrite does not refresh k1's position

	got, ok := c.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "v1-updated", got)

	c.Set("k3", "v3")

	_, ok = c.Get("k1")
	assert.False(t, ok, "k1 is still the oldest-inserted key and gets evicted")
	_, ok = c.Get("k2")
	assert.True(t, ok)
}

func TestResponseCache_SetPurgesExpiredBeforeEvicting(t *testing.T) {
	t.Parallel()

	c, now := newTestCache(10*time.Minute, 2)

	c.Set("old-1", "v")
	c.Set("old-2", "v")
	*now = now.Add(11 * time.Minute)

	// Both existing entries are expired; the write reaps them instead of
	// evicting anything live.
	c.Set("fresh", "v")

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestResponseCache_ManyDistinctKeysStayBounded(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(10*time.Minute, 10)

	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("key-%d", i), "v")
	}

	assert.Equal(t, 10, c.Len())
	_, ok := c.Get("key-99")
	assert.True(t, ok, "newest key is retained")
}
