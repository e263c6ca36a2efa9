package trivia

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ninotmecheast-source/trivia/internal/cache"
	"github.com/ninotmecheast-source/trivia/internal/interfaces"
	"github.com/ninotmecheast-source/trivia/internal/metrics"
	"github.com/ninotmecheast-source/trivia/internal/models"
)

// DefaultTTL is how long a fetched question batch counts as fresh.
const DefaultTTL = 10 * time.Minute

const (
	// MaxLimit caps how many questions a single request may ask for.
	MaxLimit = 50

	// singleDrawBatch is fetched when a caller wants one question, so
	// repeated single draws come out of a varied pool.
	singleDrawBatch = 50

	// minBatch is the smallest batch requested from the provider.
	minBatch = 20

	// randomWindow bounds the random pick for single draws to the front of
	// the batch.
	randomWindow = 20
)

const cacheType = "questions"

// QuestionCache serves trivia questions per category, keeping one fetched
// batch per category and degrading to an expired batch or the static
// fallback sets when the provider fails.
type QuestionCache struct {
	provider interfaces.QuestionProvider
	store    *cache.Store[[]models.Question]
	logger   *zap.Logger
}

// NewQuestionCache creates a question cache backed by provider. A ttl of
// zero or less falls back to DefaultTTL.
func NewQuestionCache(provider interfaces.QuestionProvider, ttl time.Duration, logger *zap.Logger) *QuestionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &QuestionCache{
		provider: provider,
		store:    cache.NewStore[[]models.Question](ttl),
		logger:   logger,
	}
}

// Questions returns limit questions for categoryID, clamping limit to
// [1, MaxLimit]. Provider failures never surface: the cache serves an
// expired batch if one is still around, then the static fallback set
// (unknown categories get the "general" set). The returned slice is the
// caller's to keep.
func (qc *QuestionCache) Questions(ctx context.Context, categoryID string, limit int) []models.Question {
	if limit < 1 {
		limit = 1
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	metrics.RecordCacheRequest(cacheType)

	if entry, ok := qc.store.Get(categoryID); ok && len(entry.Value) >= limit {
		metrics.RecordCacheHit(cacheType)
		return pickQuestions(entry.Value, limit)
	}
	metrics.RecordCacheMiss(cacheType)

	batch, err := qc.provider.FetchQuestions(ctx, categoryID, batchSize(limit))
	if err == nil && len(batch) > 0 {
		qc.store.Set(categoryID, batch)
		return pickQuestions(batch, limit)
	}

	qc.logger.Warn("question fetch failed",
		zap.String("category", categoryID),
		zap.Error(err))

	if entry, ok := qc.store.GetStale(categoryID); ok && len(entry.Value) >= limit {
		metrics.RecordCacheStaleServe(cacheType)
		qc.logger.Info("serving expired question batch",
			zap.String("category", categoryID),
			zap.Time("expired_at", entry.ExpiresAt))
		return pickQuestions(entry.Value, limit)
	}

	metrics.RecordCacheFallbackServe(cacheType)
	return FallbackQuestions(categoryID, limit)
}

// Warm fetches and stores a full batch for each category concurrently. The
// first failure is returned; failed categories are covered by the static
// fallbacks until the next fetch.
func (qc *QuestionCache) Warm(ctx context.Context, categories []string) error {
	var g errgroup.Group
	for _, categoryID := range categories {
		g.Go(func() error {
			batch, err := qc.provider.FetchQuestions(ctx, categoryID, singleDrawBatch)
			if err != nil {
				return fmt.Errorf("warm %q: %w", categoryID, err)
			}
			if len(batch) == 0 {
				return fmt.Errorf("warm %q: empty batch", categoryID)
			}
			qc.store.Set(categoryID, batch)
			return nil
		})
	}
	return g.Wait()
}

// Stats reports entry counts for the question cache.
func (qc *QuestionCache) Stats() models.CacheStats {
	return qc.store.Stats()
}

// Sweep removes question batches past the staleness threshold and reports
// how many were purged.
func (qc *QuestionCache) Sweep() int {
	return qc.store.Sweep()
}

// batchSize picks how many questions to request upstream: single draws pull
// a large batch for variety, everything else at least minBatch.
func batchSize(limit int) int {
	if limit == 1 {
		return singleDrawBatch
	}
	if limit < minBatch {
		return minBatch
	}
	return limit
}

// pickQuestions applies the serving policy to a batch: a uniform random pick
// from the front window for single draws, the deterministic prefix
// otherwise. The returned slice is a copy.
func pickQuestions(batch []models.Question, limit int) []models.Question {
	if limit == 1 {
		window := len(batch)
		if window > randomWindow {
			window = randomWindow
		}
		return []models.Question{batch[rand.Intn(window)]}
	}
	if limit > len(batch) {
		limit = len(batch)
	}
	return append([]models.Question(nil), batch[:limit]...)
}
