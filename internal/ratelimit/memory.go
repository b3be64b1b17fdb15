package ratelimit

import (
	"sync"
	"time"
)

const (
	cleanupInterval = time.Minute
	maxEntryAge     = 2 * time.Hour
)

// MemoryStore keeps request timestamps in a process-wide map. Safe for
// concurrent use from many request-handling goroutines.
type MemoryStore struct {
	mu          sync.Mutex
	entries     map[string][]int64 // unix milliseconds, oldest first
	lastCleanup time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string][]int64),
		lastCleanup: time.Now(),
	}
}

// Take implements Store.
func (s *MemoryStore) Take(identifier string, now time.Time, max int, window time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanup(now)

	nowMs := now.UnixMilli()
	windowStart := nowMs - window.Milliseconds()

	stamps := s.entries[identifier]
	kept := stamps[:0]
	for _, t := range stamps {
		if t > windowStart {
			kept = append(kept, t)
		}
	}

	if len(kept) >= max {
		s.entries[identifier] = kept
		reset := time.UnixMilli(kept[0] + window.Milliseconds())
		return Result{Allowed: false, Remaining: 0, Reset: reset}, nil
	}

	kept = append(kept, nowMs)
	s.entries[identifier] = kept
	return Result{
		Allowed:   true,
		Remaining: max - len(kept),
		Reset:     now.Add(window),
	}, nil
}

// cleanup evicts identifiers whose newest stamp is older than the
// retention ceiling. Runs at most once per cleanupInterval; bounds
// growth from abandoned identifiers. Caller holds the lock.
func (s *MemoryStore) cleanup(now time.Time) {
	if now.Sub(s.lastCleanup) < cleanupInterval {
		return
	}
	s.lastCleanup = now
	ceiling := now.UnixMilli() - maxEntryAge.Milliseconds()
	for key, stamps := range s.entries {
		if len(stamps) == 0 || stamps[len(stamps)-1] < ceiling {
			delete(s.entries, key)
		}
	}
}

// Len reports the number of tracked identifiers.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
