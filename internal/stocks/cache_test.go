package stocks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/ninotmecheast-source/trivia/internal/interfaces/mock"
	"github.com/ninotmecheast-source/trivia/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newQuoteCacheWithMock(t *testing.T, ttl time.Duration) (*QuoteCache, *mock.MockQuoteProvider, *fakeClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := mock.NewMockQuoteProvider(ctrl)
	qc := NewQuoteCache(provider, ttl, zaptest.NewLogger(t))

	clk := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	qc.store.Now = clk.Now
	return qc, provider, clk
}

func TestQuoteCache_FetchesOnMiss(t *testing.T) {
	qc, provider, _ := newQuoteCacheWithMock(t, time.Minute)
	want := models.Quote{Symbol: "AAPL", Price: 187.43, PercentChange: -0.52}

	provider.EXPECT().
		FetchQuote(gomock.Any(), "AAPL").
		Return(want, nil).
		Times(1)

	got, err := qc.Quote(context.Background(), "AAPL")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQuoteCache_ServesFromCacheWithinTTL(t *testing.T) {
	qc, provider, _ := newQuoteCacheWithMock(t, time.Minute)
	want := models.Quote{Symbol: "AAPL", Price: 187.43, PercentChange: -0.52}

	// A second call within TTL must not reach the provider.
	provider.EXPECT().
		FetchQuote(gomock.Any(), "AAPL").
		Return(want, nil).
		Times(1)

	first, err := qc.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	second, err := qc.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestQuoteCache_RefetchesAfterExpiry(t *testing.T) {
	qc, provider, clk := newQuoteCacheWithMock(t, time.Minute)

	provider.EXPECT().
		FetchQuote(gomock.Any(), "AAPL").
		Return(models.Quote{Symbol: "AAPL", Price: 180}, nil).
		Times(1)
	provider.EXPECT().
		FetchQuote(gomock.Any(), "AAPL").
		Return(models.Quote{Symbol: "AAPL", Price: 185}, nil).
		Times(1)

	first, err := qc.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, float64(180), first.Price)

	clk.Advance(61 * time.Second)

	second, err := qc.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, float64(185), second.Price)
}

func TestQuoteCache_UppercasesSymbol(t *testing.T) {
	qc, provider, _ := newQuoteCacheWithMock(t, time.Minute)

	provider.EXPECT().
		FetchQuote(gomock.Any(), "AAPL").
		Return(models.Quote{Symbol: "AAPL", Price: 180}, nil).
		Times(1)

	first, err := qc.Quote(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", first.Symbol)

	// Different casing hits the same entry.
	second, err := qc.Quote(context.Background(), " Aapl ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuoteCache_FetchErrorPropagates(t *testing.T) {
	qc, provider, _ := newQuoteCacheWithMock(t, time.Minute)

	provider.EXPECT().
		FetchQuote(gomock.Any(), "AAPL").
		Return(models.Quote{}, &FetchError{Symbol: "AAPL", Err: fmt.Errorf("status 502")}).
		Times(1)

	_, err := qc.Quote(context.Background(), "AAPL")

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestQuoteCache_InvalidQuoteNotCached(t *testing.T) {
	qc, provider, _ := newQuoteCacheWithMock(t, time.Minute)

	provider.EXPECT().
		FetchQuote(gomock.Any(), "NOPE").
		Return(models.Quote{}, fmt.Errorf("%w: NOPE", ErrInvalidQuote)).
		Times(2)

	_, err := qc.Quote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrInvalidQuote)

	// Failures leave nothing behind, so the next call fetches again.
	_, err = qc.Quote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrInvalidQuote)
}

func TestQuoteCache_EmptySymbol(t *testing.T) {
	qc, _, _ := newQuoteCacheWithMock(t, time.Minute)

	_, err := qc.Quote(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidQuote)
}

func TestQuoteCache_NoStaleServing(t *testing.T) {
	qc, provider, clk := newQuoteCacheWithMock(t, time.Minute)

	provider.EXPECT().
		FetchQuote(gomock.Any(), "AAPL").
		Return(models.Quote{Symbol: "AAPL", Price: 180}, nil).
		Times(1)
	provider.EXPECT().
		FetchQuote(gomock.Any(), "AAPL").
		Return(models.Quote{}, &FetchError{Symbol: "AAPL", Err: fmt.Errorf("status 502")}).
		Times(1)

	_, err := qc.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	clk.Advance(61 * time.Second)

	// A stale price is never served; the failure surfaces instead.
	_, err = qc.Quote(context.Background(), "AAPL")
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}

func TestQuoteCache_StatsAndPurge(t *testing.T) {
	qc, provider, clk := newQuoteCacheWithMock(t, time.Minute)

	provider.EXPECT().
		FetchQuote(gomock.Any(), "AAPL").
		Return(models.Quote{Symbol: "AAPL", Price: 180}, nil).
		Times(1)

	_, err := qc.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, models.CacheStats{TotalEntries: 1, ValidEntries: 1}, qc.Stats())

	clk.Advance(90 * time.Second)
	assert.Equal(t, models.CacheStats{TotalEntries: 1, ExpiredEntries: 1}, qc.Stats())

	clk.Advance(3 * time.Minute)
	assert.Equal(t, models.CacheStats{}, qc.Stats())
	assert.Equal(t, 1, qc.Sweep())
}
