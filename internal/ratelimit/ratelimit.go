// Package ratelimit implements a sliding-window request limiter keyed
// by an identifier such as "login:203.0.113.7". The window is counted
// over request timestamps, not fixed calendar buckets, so the
// (N+1)-th request inside any rolling window of the configured length
// is rejected.
//
// State lives in a Store. The in-memory store covers single-instance
// deployments; separate process instances do not share limiter state
// unless the Redis store is configured.
package ratelimit

import (
	"log/slog"
	"strings"
	"time"
)

// Config describes the budget for one action class. Static, defined
// per action, never mutated at runtime.
type Config struct {
	Prefix      string
	MaxRequests int
	Window      time.Duration
}

// Budgets for the sensitive action classes.
var (
	LoginLimit    = Config{Prefix: "login", MaxRequests: 5, Window: 15 * time.Minute}
	RegisterLimit = Config{Prefix: "register", MaxRequests: 3, Window: time.Hour}
	ContactLimit  = Config{Prefix: "contact", MaxRequests: 3, Window: time.Hour}
)

// Result reports the outcome of a single check.
type Result struct {
	Allowed   bool
	Remaining int
	Reset     time.Time
}

// Store holds per-identifier request timestamps.
type Store interface {
	// Take prunes stamps older than now-window, then either rejects
	// (count >= max) or records now and accepts.
	Take(identifier string, now time.Time, max int, window time.Duration) (Result, error)
}

// HitObserver counts rejected requests per action class. Satisfied by
// observability.Metrics.
type HitObserver interface {
	ObserveRateLimitHit(prefix string)
}

// Limiter checks request budgets against a Store. It never fails a
// request on store errors: a broken backing store fails open.
type Limiter struct {
	store  Store
	logger *slog.Logger
	hits   HitObserver
}

// NewLimiter constructs a Limiter.
func NewLimiter(store Store, logger *slog.Logger) *Limiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{store: store, logger: logger}
}

// WithHitObserver attaches a rejection counter. Nil observers are
// ignored.
func (l *Limiter) WithHitObserver(obs HitObserver) *Limiter {
	l.hits = obs
	return l
}

// Check applies the sliding window for identifier. Always returns a
// result, never an error.
func (l *Limiter) Check(identifier string, max int, window time.Duration) Result {
	now := time.Now()
	res, err := l.store.Take(identifier, now, max, window)
	if err != nil {
		l.logger.Warn("rate limit store unavailable, failing open",
			slog.String("identifier", identifier), slog.Any("error", err))
		return Result{Allowed: true, Remaining: max - 1, Reset: now.Add(window)}
	}
	if !res.Allowed && l.hits != nil {
		prefix, _, _ := strings.Cut(identifier, ":")
		l.hits.ObserveRateLimitHit(prefix)
	}
	return res
}

// Key builds the canonical identifier for an action class and caller.
func Key(prefix, callerIP string) string {
	return prefix + ":" + callerIP
}
