// Package cache implements the expiry mechanics shared by the question
// and quote caches: TTL-stamped entries kept past expiry as fallback
// material, purged only once they age beyond a larger staleness
// threshold.
package cache

import (
	"sync"
	"time"

	"github.com/ninotmecheast-source/trivia/internal/models"
)

// staleFactor sets how long an expired entry is retained for stale
// serving: PurgeAt = ExpiresAt + staleFactor*TTL.
const staleFactor = 2

// Store is a keyed in-memory cache with a fixed per-store TTL.
//
// Reads take the read lock and writes the write lock; the upstream fetch
// that usually surrounds a miss happens outside the store entirely, so
// two concurrent misses for the same key may both fetch and the second
// Set wins. That redundancy is accepted in place of per-key coalescing.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
	ttl     time.Duration

	// Now is the clock used for stamping and freshness decisions.
	// Tests swap in a fake; production code leaves it alone.
	Now func() time.Time
}

// NewStore returns an empty store whose entries stay fresh for ttl and
// remain available as stale fallback for a further staleFactor*ttl.
func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[string]Entry[T]),
		ttl:     ttl,
		Now:     time.Now,
	}
}

// TTL returns the store's fresh lifetime.
func (s *Store[T]) TTL() time.Duration {
	return s.ttl
}

// Get returns the entry for key while it is still fresh.
func (s *Store[T]) Get(key string) (Entry[T], bool) {
	now := s.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !e.Fresh(now) {
		return Entry[T]{}, false
	}
	return e, true
}

// GetStale returns the entry for key regardless of freshness, as long as
// it has not crossed the purge threshold. Callers use it to serve stale
// data when a refresh fails.
func (s *Store[T]) GetStale(key string) (Entry[T], bool) {
	now := s.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || e.Purgeable(now) {
		return Entry[T]{}, false
	}
	return e, true
}

// Set stores value under key with a fresh TTL stamp, replacing any prior
// entry, and sweeps purgeable entries while it holds the lock.
func (s *Store[T]) Set(key string, value T) {
	now := s.Now()
	expires := now.Add(s.ttl)
	e := Entry[T]{
		Value:     value,
		StoredAt:  now,
		ExpiresAt: expires,
		PurgeAt:   expires.Add(staleFactor * s.ttl),
	}
	s.mu.Lock()
	s.entries[key] = e
	s.sweepLocked(now)
	s.mu.Unlock()
}

// Delete removes the entry for key, if any.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Sweep removes every entry past its purge threshold and reports how many
// were dropped. The composition root runs this periodically; Set also
// sweeps opportunistically after each successful refresh.
func (s *Store[T]) Sweep() int {
	now := s.Now()
	s.mu.Lock()
	n := s.sweepLocked(now)
	s.mu.Unlock()
	return n
}

func (s *Store[T]) sweepLocked(now time.Time) int {
	var n int
	for k, e := range s.entries {
		if e.Purgeable(now) {
			delete(s.entries, k)
			n++
		}
	}
	return n
}

// Len returns the number of entries currently held, including expired
// ones awaiting the sweep.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats summarizes the store for diagnostics. Purgeable entries are
// excluded from every count so the totals do not depend on sweep timing.
func (s *Store[T]) Stats() models.CacheStats {
	now := s.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.CacheStats
	for _, e := range s.entries {
		if e.Purgeable(now) {
			continue
		}
		stats.TotalEntries++
		if e.Fresh(now) {
			stats.ValidEntries++
		} else {
			stats.ExpiredEntries++
		}
	}
	return stats
}
