package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests advance time explicitly instead of sleeping.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*Store[string], *fakeClock) {
	clk := newFakeClock()
	s := NewStore[string](ttl)
	s.Now = clk.Now
	return s, clk
}

func TestStore_Set_And_Get_Fresh(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	s.Set("key", "value")

	e, found := s.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", e.Value)
	assert.Equal(t, e.StoredAt.Add(time.Minute), e.ExpiresAt)
	assert.Equal(t, e.ExpiresAt.Add(2*time.Minute), e.PurgeAt)
}

func TestStore_Get_NotFound(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	_, found := s.Get("missing")
	assert.False(t, found)
}

func TestStore_Get_Expired(t *testing.T) {
	s, clk := newTestStore(time.Minute)

	s.Set("key", "value")
	clk.Advance(time.Minute) // exactly at ExpiresAt: no longer fresh

	_, found := s.Get("key")
	assert.False(t, found)
}

func TestStore_GetStale_ServesExpiredEntry(t *testing.T) {
	s, clk := newTestStore(time.Minute)

	s.Set("key", "value")
	clk.Advance(90 * time.Second)

	_, found := s.Get("key")
	assert.False(t, found)

	e, found := s.GetStale("key")
	assert.True(t, found)
	assert.Equal(t, "value", e.Value)
}

func TestStore_GetStale_RefusesPurgeableEntry(t *testing.T) {
	s, clk := newTestStore(time.Minute)

	s.Set("key", "value")
	// TTL + 2*TTL: the entry hits its purge threshold.
	clk.Advance(3 * time.Minute)

	_, found := s.GetStale("key")
	assert.False(t, found)
}

func TestStore_Set_Overwrites(t *testing.T) {
	s, clk := newTestStore(time.Minute)

	s.Set("key", "old")
	clk.Advance(30 * time.Second)
	s.Set("key", "new")

	e, found := s.Get("key")
	assert.True(t, found)
	assert.Equal(t, "new", e.Value)
	assert.Equal(t, clk.Now(), e.StoredAt)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Set_SweepsPurgeableEntries(t *testing.T) {
	s, clk := newTestStore(time.Minute)

	s.Set("doomed", "value")
	clk.Advance(3 * time.Minute)

	s.Set("other", "value")

	assert.Equal(t, 1, s.Len())
	_, found := s.GetStale("doomed")
	assert.False(t, found)
}

func TestStore_Sweep_RemovesOnlyPurgeable(t *testing.T) {
	s, clk := newTestStore(time.Minute)

	s.Set("old", "value")
	clk.Advance(2 * time.Minute)
	s.Set("recent", "value")
	clk.Advance(time.Minute) // "old" is now 3m past store; "recent" 1m

	removed := s.Sweep()

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Len())
	_, found := s.GetStale("recent")
	assert.True(t, found)
}

func TestStore_Delete(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	s.Set("key", "value")
	s.Delete("key")

	_, found := s.GetStale("key")
	assert.False(t, found)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Stats_CountsStates(t *testing.T) {
	s, clk := newTestStore(time.Minute)

	s.Set("stale", "value")
	clk.Advance(2 * time.Minute)
	s.Set("fresh", "value")

	stats := s.Stats()
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 1, stats.ValidEntries)
	assert.Equal(t, 1, stats.ExpiredEntries)
}

func TestStore_Stats_IgnoresPurgeableBeforeSweep(t *testing.T) {
	s, clk := newTestStore(time.Minute)

	s.Set("key", "value")
	clk.Advance(3 * time.Minute)

	// No sweep has run, but the entry is past TTL + 2*TTL and must not
	// appear in diagnostics.
	stats := s.Stats()
	assert.Equal(t, 0, stats.TotalEntries)
	assert.Equal(t, 0, stats.ValidEntries)
	assert.Equal(t, 0, stats.ExpiredEntries)
	assert.Equal(t, 1, s.Len())
}

func TestStore_MultipleKeys(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	for i := 0; i < 10; i++ {
		s.Set(fmt.Sprintf("key-%d", i), fmt.Sprintf("value-%d", i))
	}

	for i := 0; i < 10; i++ {
		e, found := s.Get(fmt.Sprintf("key-%d", i))
		assert.True(t, found)
		assert.Equal(t, fmt.Sprintf("value-%d", i), e.Value)
	}
}
