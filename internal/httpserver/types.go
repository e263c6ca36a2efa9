package httpserver

import (
	"github.com/go-playground/validator/v10"

	"github.com/ninotmecheast-source/trivia/internal/models"
)

var validate = validator.New()

// QuestionsResponse is the payload for GET /api/trivia/questions
type QuestionsResponse struct {
	Category  string            `json:"category"`
	Questions []models.Question `json:"questions"`
}

// CategoriesResponse lists the trivia categories the backend serves
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// TradeRequest is the body for POST /api/stocks/buy and /api/stocks/sell
type TradeRequest struct {
	Symbol string  `json:"symbol" validate:"required"`
	Shares int     `json:"shares" validate:"required,gt=0"`
	Price  float64 `json:"price" validate:"required,gt=0"`
}

// CreatePostRequest is the body for POST /api/news
type CreatePostRequest struct {
	Title   string   `json:"title" validate:"required"`
	Summary string   `json:"summary"`
	Body    string   `json:"body"`
	Link    string   `json:"link" validate:"omitempty,url"`
	Tags    []string `json:"tags"`
}

// PostsResponse is the payload for GET /api/news
type PostsResponse struct {
	Posts []models.Post `json:"posts"`
}

// CacheStatsResponse reports entry counts for the question and quote caches
type CacheStatsResponse struct {
	Questions models.CacheStats `json:"questions"`
	Quotes    models.CacheStats `json:"quotes"`
}
