// Package ratelimit implements the per-client fixed-window request limiter
// that protects the downstream generative-model quota. Counting is discrete:
// a record's count resets entirely when its window ends, and admit-and-
// increment is atomic under a single mutex so concurrent first requests
// cannot under-count.
package ratelimit

import (
	"log/slog"
	"sync"
	"time"
)

// record tracks one client identifier within the current window.
type record struct {
	count   int
	resetAt time.Time
}

// Decision is the outcome of an admission check.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// Limit is the configured max requests per window.
	Limit int

	// Remaining is the number of requests left in the current window.
	// Zero when denied.
	Remaining int

	// ResetAt is the absolute time the current window ends.
	ResetAt time.Time

	// RetryAfterSeconds is the whole seconds until ResetAt (milliseconds
	// rounded up), only meaningful when denied.
	RetryAfterSeconds int64
}

// Limiter is a fixed-window counter keyed by client identifier.
// It is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	records map[string]*record
	logger  *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New creates a Limiter admitting at most max requests per client per window.
func New(window time.Duration, max int, logger *slog.Logger) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{
		window:  window,
		max:     max,
		records: make(map[string]*record),
		logger:  logger.With(slog.String("component", "rate_limiter")),
		now:     time.Now,
	}
}

// Admit checks and atomically consumes one request slot for clientID.
// A fresh record (first request, or first request after the window elapsed)
// starts a new window with count one. Within a live window the count is
// incremented until the max, after which requests are denied with the
// seconds remaining until the window resets.
func (l *Limiter) Admit(clientID string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	rec, ok := l.records[clientID]
	if !ok || !now.Before(rec.resetAt) {
		rec = &record{count: 1, resetAt: now.Add(l.window)}
		l.records[clientID] = rec
		return Decision{
			Allowed:   true,
			Limit:     l.max,
			Remaining: l.max - 1,
			ResetAt:   rec.resetAt,
		}
	}

	if rec.count >= l.max {
		untilReset := rec.resetAt.Sub(now)
		return Decision{
			Allowed:           false,
			Limit:             l.max,
			Remaining:         0,
			ResetAt:           rec.resetAt,
			RetryAfterSeconds: ceilSeconds(untilReset),
		}
	}

	rec.count++
	return Decision{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - rec.count,
		ResetAt:   rec.resetAt,
	}
}

// Sweep removes every record whose window has already ended, bounding memory
// growth from abandoned identifiers. Returns the number of records removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id, rec := range l.records {
		if !now.Before(rec.resetAt) {
			delete(l.records, id)
			removed++
		}
	}
	return removed
}

// ceilSeconds converts a positive duration to whole seconds, rounding
// milliseconds up so a caller never retries early.
func ceilSeconds(d time.Duration) int64 {
	ms := d.Milliseconds()
	if ms <= 0 {
		return 0
	}
	return (ms + 999) / 1000
}
