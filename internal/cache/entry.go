package cache

import "time"

// Entry is a snapshot of one cached value. Entries are immutable once
// stored: a refresh replaces the whole entry rather than mutating it.
//
// An entry moves through three states as the clock advances:
//   - fresh:   now < ExpiresAt; served normally.
//   - expired: ExpiresAt <= now < PurgeAt; not served normally, but
//     retained as fallback material for stale-if-error reads.
//   - purgeable: now >= PurgeAt; invisible to all reads and removed by
//     the next sweep.
type Entry[T any] struct {
	Value     T
	StoredAt  time.Time
	ExpiresAt time.Time
	PurgeAt   time.Time
}

// Fresh reports whether the entry is within its TTL at the given time.
func (e Entry[T]) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// Purgeable reports whether the entry has crossed its staleness threshold
// and may no longer be served, even as fallback.
func (e Entry[T]) Purgeable(now time.Time) bool {
	return !now.Before(e.PurgeAt)
}
