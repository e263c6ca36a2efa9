package interfaces

import (
	"context"

	"github.com/ninotmecheast-source/trivia/internal/models"
)

//go:generate mockgen -package=mock -source=providers.go -destination=mock/providers.go

// QuestionProvider fetches a batch of multiple-choice questions for one
// category from the upstream trivia service.
type QuestionProvider interface {
	FetchQuestions(ctx context.Context, categoryID string, amount int) ([]models.Question, error)
}

// QuoteProvider fetches the latest market quote for one ticker symbol
// from the upstream quote service.
type QuoteProvider interface {
	FetchQuote(ctx context.Context, symbol string) (models.Quote, error)
}
