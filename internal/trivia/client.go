package trivia

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/ninotmecheast-source/trivia/internal/interfaces"
	"github.com/ninotmecheast-source/trivia/internal/metrics"
	"github.com/ninotmecheast-source/trivia/internal/models"
)

// Upstream response codes.
const (
	codeSuccess          = 0
	codeNoResults        = 1
	codeInvalidParameter = 2
	codeTokenNotFound    = 3
	codeTokenEmpty       = 4
	codeRateLimited      = 5
)

type questionsResponse struct {
	ResponseCode int              `json:"response_code"`
	Results      []questionResult `json:"results"`
}

type questionResult struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Client fetches multiple-choice questions from an Open-Trivia-DB-compatible
// HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ interfaces.QuestionProvider = (*Client)(nil)

// NewClient creates a question provider client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchQuestions requests amount multiple-choice questions for a category.
// Question and answer text arrives percent-encoded and is decoded here; the
// options of each question are shuffled, with the correct index tracking the
// shuffle.
func (c *Client) FetchQuestions(ctx context.Context, categoryID string, amount int) ([]models.Question, error) {
	providerCategory, ok := categoryIDs[categoryID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
	}

	done := metrics.TimeUpstreamRequest("trivia")
	defer done()

	query := url.Values{}
	query.Set("amount", strconv.Itoa(amount))
	query.Set("category", strconv.Itoa(providerCategory))
	query.Set("type", "multiple")
	query.Set("encode", "url3986")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		metrics.RecordUpstreamRequest("trivia", "request_error")
		return nil, fmt.Errorf("failed to build trivia request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest("trivia", "network_error")
		return nil, fmt.Errorf("trivia request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordUpstreamRequest("trivia", "http_error")
		return nil, fmt.Errorf("trivia provider returned status %d", resp.StatusCode)
	}

	var envelope questionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		metrics.RecordUpstreamRequest("trivia", "decode_error")
		return nil, fmt.Errorf("failed to decode trivia response: %w", err)
	}

	if envelope.ResponseCode != codeSuccess {
		metrics.RecordUpstreamRequest("trivia", "api_error")
		c.logger.Debug("trivia provider rejected request",
			zap.Int("response_code", envelope.ResponseCode),
			zap.String("category", categoryID))
		return nil, &UpstreamError{Reason: upstreamReason(envelope.ResponseCode)}
	}
	if len(envelope.Results) == 0 {
		metrics.RecordUpstreamRequest("trivia", "api_error")
		return nil, &UpstreamError{Reason: "no-results"}
	}

	metrics.RecordUpstreamRequest("trivia", "success")

	questions := make([]models.Question, 0, len(envelope.Results))
	for _, result := range envelope.Results {
		questions = append(questions, result.toQuestion(categoryID))
	}
	return questions, nil
}

func upstreamReason(code int) string {
	switch code {
	case codeNoResults:
		return "no-results"
	case codeInvalidParameter:
		return "invalid-parameter"
	case codeTokenNotFound:
		return "token-not-found"
	case codeTokenEmpty:
		return "token-empty"
	case codeRateLimited:
		return "rate-limited"
	default:
		return "unknown"
	}
}

// toQuestion decodes one upstream result into a Question with shuffled
// options.
func (r questionResult) toQuestion(categoryID string) models.Question {
	correct := percentDecode(r.CorrectAnswer)

	options := make([]string, 0, len(r.IncorrectAnswers)+1)
	options = append(options, correct)
	for _, answer := range r.IncorrectAnswers {
		options = append(options, percentDecode(answer))
	}

	correctIndex := 0
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
		switch correctIndex {
		case i:
			correctIndex = j
		case j:
			correctIndex = i
		}
	})

	return models.Question{
		Category:     categoryID,
		Text:         percentDecode(r.Question),
		Options:      options,
		CorrectIndex: correctIndex,
		Difficulty:   parseDifficulty(r.Difficulty),
	}
}

// percentDecode undoes the provider's RFC 3986 encoding, keeping the raw
// string when it does not parse.
func percentDecode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

func parseDifficulty(s string) int {
	switch s {
	case "easy":
		return models.DifficultyEasy
	case "medium":
		return models.DifficultyMedium
	case "hard":
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}
