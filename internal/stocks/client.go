package stocks

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/ninotmecheast-source/trivia/internal/interfaces"
	"github.com/ninotmecheast-source/trivia/internal/metrics"
	"github.com/ninotmecheast-source/trivia/internal/models"
)

type quoteEnvelope struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                     string  `json:"symbol"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
}

// Client fetches real-time quotes from a Yahoo-Finance-style HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ interfaces.QuoteProvider = (*Client)(nil)

// NewClient creates a quote provider client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchQuote requests the latest quote for symbol. Transport and decoding
// failures come back as *FetchError; a response without a quote record for
// the symbol is ErrInvalidQuote.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (models.Quote, error) {
	done := metrics.TimeUpstreamRequest("quotes")
	defer done()

	query := url.Values{}
	query.Set("symbols", symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		metrics.RecordUpstreamRequest("quotes", "request_error")
		return models.Quote{}, &FetchError{Symbol: symbol, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest("quotes", "network_error")
		return models.Quote{}, &FetchError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordUpstreamRequest("quotes", "http_error")
		return models.Quote{}, &FetchError{Symbol: symbol, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var envelope quoteEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		metrics.RecordUpstreamRequest("quotes", "decode_error")
		return models.Quote{}, &FetchError{Symbol: symbol, Err: fmt.Errorf("decode response: %w", err)}
	}

	results := envelope.QuoteResponse.Result
	if len(results) == 0 {
		metrics.RecordUpstreamRequest("quotes", "no_data")
		return models.Quote{}, fmt.Errorf("%w: %s", ErrInvalidQuote, symbol)
	}

	metrics.RecordUpstreamRequest("quotes", "success")

	first := results[0]
	return models.Quote{
		Symbol:        first.Symbol,
		Price:         first.RegularMarketPrice,
		PercentChange: first.RegularMarketChangePercent,
	}, nil
}
