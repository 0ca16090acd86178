package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter with a controllable clock.
func newTestLimiter(window time.Duration, max int) (*Limiter, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(window, max, nil)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_AdmitsUpToMax(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(time.Minute, 5)

	for i := 0; i < 5; i++ {
		d := l.Admit("1.2.3.4")
		require.True(t, d.Allowed, "request %d should be admitted", i+1)
		assert.Equal(t, 5, d.Limit)
		assert.Equal(t, 4-i, d.Remaining)
	}

	d := l.Admit("1.2.3.4")
	assert.False(t, d.Allowed, "request beyond max should be denied")
	assert.Equal(t, 0, d.Remaining)
	assert.Positive(t, d.RetryAfterSeconds)
}

func TestLimiter_RetryAfterRoundsUp(t *testing.T) {
	t.Parallel()

	l, now := newTestLimiter(time.Minute, 1)

	l.Admit("client")
	*now = now.Add(59*time.Second + 500*time.Millisecond) // 500ms left in window

	d := l.Admit("client")
	require.False(t, d.Allowed)
	assert.Equal(t, int64(1), d.RetryAfterSeconds, "sub-second remainder rounds up to one second")
}

func TestLimiter_WindowExpiryResetsCount(t *testing.T) {
	t.Parallel()

	l, now := newTestLimiter(time.Minute, 2)

	l.Admit("client")
	l.Admit("client")
	require.False(t, l.Admit("client").Allowed)

	*now = now.Add(61 * time.Second)

	d := l.Admit("client")
	require.True(t, d.Allowed, "previously limited client is admitted after window expiry")
	assert.Equal(t, 1, d.Remaining, "count restarted at one")
	assert.Equal(t, now.Add(time.Minute), d.ResetAt)
}

func TestLimiter_IndependentClients(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(time.Minute, 1)

	require.True(t, l.Admit("a").Allowed)
	require.False(t, l.Admit("a").Allowed)
	assert.True(t, l.Admit("b").Allowed, "a second identifier has its own window")
}

func TestLimiter_SweepRemovesExpiredRecords(t *testing.T) {
	t.Parallel()

	l, now := newTestLimiter(time.Minute, 10)

	l.Admit("stale-1")
	l.Admit("stale-2")
	*now = now.Add(30 * time.Second)
	l.Admit("live")

	*now = now.Add(45 * time.Second) // stale windows ended, live has 15s left

	removed := l.Sweep()
	assert.Equal(t, 2, removed)
	assert.Len(t, l.records, 1)

	// A swept identifier starts a fresh window on its next request.
	d := l.Admit("stale-1")
	require.True(t, d.Allowed)
	assert.Equal(t, 9, d.Remaining)
}

func TestCeilSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    time.Duration
		want int64
	}{
		{name: "exact seconds", d: 3 * time.Second, want: 3},
		{name: "partial second rounds up", d: 2*time.Second + time.Millisecond, want: 3},
		{name: "sub-second", d: 10 * time.Millisecond, want: 1},
		{name: "zero", d: 0, want: 0},
		{name: "negative", d: -time.Second, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ceilSeconds(tc.d))
		})
	}
}
