package httpserver

import (
	"net/http"
	"strconv"

	"github.com/ninotmecheast-source/trivia/internal/trivia"
)

// handleQuestions serves trivia questions for one category. The limit is
// clamped by the cache, so only a non-numeric limit is rejected here.
func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "general"
	}

	limit := 1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeErrorResponse(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	questions := s.deps.Questions.Questions(r.Context(), category, limit)
	s.writeResponse(w, QuestionsResponse{
		Category:  category,
		Questions: questions,
	})
}

// handleCategories lists the trivia categories the backend can serve
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, CategoriesResponse{
		Categories: trivia.Categories(),
	})
}
