package httpserver

import (
	"context"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ninotmecheast-source/trivia/internal/news"
	"github.com/ninotmecheast-source/trivia/internal/stocks"
	"github.com/ninotmecheast-source/trivia/internal/trivia"
)

// Deps bundles the domain components the server fronts.
type Deps struct {
	Questions *trivia.QuestionCache
	Quotes    *stocks.QuoteCache
	Ledger    *stocks.Ledger
	Posts     *news.Store
	Feed      *news.Feed
}

// Server represents the trivia backend HTTP server
type Server struct {
	deps   Deps
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a new backend HTTP server
func NewServer(deps Deps, logger *zap.Logger) *Server {
	return &Server{
		deps:   deps,
		logger: logger,
	}
}

// Start begins serving on addr and blocks until the server exits
func (s *Server) Start(addr string) error {
	router := s.createRouter()

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// createRouter creates and configures the HTTP router
func (s *Server) createRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.recoveryMiddleware, corsMiddleware, s.loggingMiddleware)

	api := router.PathPrefix("/api").Subrouter()

	// Trivia endpoints
	api.HandleFunc("/trivia/questions", s.handleQuestions).Methods("GET")
	api.HandleFunc("/trivia/categories", s.handleCategories).Methods("GET")

	// Stocks endpoints
	api.HandleFunc("/stocks/quote/{symbol}", s.handleQuote).Methods("GET")
	api.HandleFunc("/stocks/buy", s.handleBuy).Methods("POST")
	api.HandleFunc("/stocks/sell", s.handleSell).Methods("POST")
	api.HandleFunc("/stocks/portfolio", s.handlePortfolio).Methods("GET")

	// News endpoints
	api.HandleFunc("/news", s.handleListPosts).Methods("GET")
	api.HandleFunc("/news", s.handleCreatePost).Methods("POST")
	api.HandleFunc("/news/{id:[0-9]+}", s.handleGetPost).Methods("GET")

	// Cache diagnostics
	api.HandleFunc("/cache/stats", s.handleCacheStats).Methods("GET")

	router.HandleFunc("/feed.xml", s.handleFeed).Methods("GET")

	// Health check
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return router
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// handleCacheStats reports entry counts for both caches
func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(w, CacheStatsResponse{
		Questions: s.deps.Questions.Stats(),
		Quotes:    s.deps.Quotes.Stats(),
	})
}

// parseRequest parses JSON request body
func (s *Server) parseRequest(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	defer r.Body.Close()

	return json.Unmarshal(body, v)
}

// writeResponse writes JSON response
func (s *Server) writeResponse(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeResponseStatus writes a JSON response with an explicit status code
func (s *Server) writeResponseStatus(w http.ResponseWriter, v interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeErrorResponse writes error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write error response", zap.Error(err))
	}
}
