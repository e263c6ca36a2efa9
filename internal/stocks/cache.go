package stocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ninotmecheast-source/trivia/internal/cache"
	"github.com/ninotmecheast-source/trivia/internal/interfaces"
	"github.com/ninotmecheast-source/trivia/internal/metrics"
	"github.com/ninotmecheast-source/trivia/internal/models"
)

// DefaultTTL is how long a fetched quote counts as fresh.
const DefaultTTL = 60 * time.Second

const cacheType = "quotes"

// QuoteCache serves the latest quote per ticker symbol. Unlike the question
// cache there is no degraded tier: an expired quote is refetched, and a
// failed refetch propagates to the caller rather than serving stale prices.
type QuoteCache struct {
	provider interfaces.QuoteProvider
	store    *cache.Store[models.Quote]
	logger   *zap.Logger
}

// NewQuoteCache creates a quote cache backed by provider. A ttl of zero or
// less falls back to DefaultTTL.
func NewQuoteCache(provider interfaces.QuoteProvider, ttl time.Duration, logger *zap.Logger) *QuoteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &QuoteCache{
		provider: provider,
		store:    cache.NewStore[models.Quote](ttl),
		logger:   logger,
	}
}

// Quote returns the cached quote for symbol, fetching from the provider when
// no fresh one is held. The symbol is uppercased for lookup and storage.
func (qc *QuoteCache) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	key := strings.ToUpper(strings.TrimSpace(symbol))
	if key == "" {
		return models.Quote{}, fmt.Errorf("%w: empty symbol", ErrInvalidQuote)
	}

	metrics.RecordCacheRequest(cacheType)

	if entry, ok := qc.store.Get(key); ok {
		metrics.RecordCacheHit(cacheType)
		return entry.Value, nil
	}
	metrics.RecordCacheMiss(cacheType)

	quote, err := qc.provider.FetchQuote(ctx, key)
	if err != nil {
		qc.logger.Warn("quote fetch failed",
			zap.String("symbol", key),
			zap.Error(err))
		return models.Quote{}, err
	}

	quote.Symbol = key
	qc.store.Set(key, quote)
	return quote, nil
}

// Stats reports entry counts for the quote cache.
func (qc *QuoteCache) Stats() models.CacheStats {
	return qc.store.Stats()
}

// Sweep removes quotes past the staleness threshold and reports how many
// were purged.
func (qc *QuoteCache) Sweep() int {
	return qc.store.Sweep()
}
