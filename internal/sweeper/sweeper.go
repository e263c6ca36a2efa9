package sweeper

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ninotmecheast-source/trivia/internal/metrics"
	"github.com/ninotmecheast-source/trivia/internal/models"
)

// Target is one cache subject to periodic staleness sweeps.
type Target struct {
	Name  string
	Sweep func() int
	Stats func() models.CacheStats
}

// Sweeper purges cache entries past their staleness threshold at a regular
// interval and refreshes the per-cache entry gauges.
type Sweeper struct {
	interval time.Duration
	targets  []Target
	logger   *zap.Logger

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// New creates a sweeper over the given targets.
func New(interval time.Duration, logger *zap.Logger, targets ...Target) *Sweeper {
	return &Sweeper{
		interval: interval,
		targets:  targets,
		logger:   logger,
	}
}

// Start begins sweeping at the configured interval.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.SweepNow()
			case <-ctx.Done():
				return
			}
		}
	}()

	s.logger.Info("Started staleness sweeper", zap.Duration("interval", s.interval))
}

// Stop terminates the background sweeping.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false

	s.logger.Info("Stopped staleness sweeper")
}

// IsRunning returns true if the sweeper is currently running.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SweepNow runs one sweep across all targets immediately.
func (s *Sweeper) SweepNow() {
	for _, target := range s.targets {
		removed := target.Sweep()
		metrics.RecordSweep(target.Name, removed)

		stats := target.Stats()
		metrics.UpdateCacheEntries(target.Name, stats.ValidEntries, stats.ExpiredEntries)

		if removed > 0 {
			s.logger.Debug("Purged stale cache entries",
				zap.String("cache", target.Name),
				zap.Int("removed", removed),
				zap.Int("remaining", stats.TotalEntries))
		}
	}
}
