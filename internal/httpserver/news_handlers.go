package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ninotmecheast-source/trivia/internal/models"
)

// handleListPosts returns stored posts, newest first
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeErrorResponse(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	posts := s.deps.Posts.List(limit)
	if posts == nil {
		posts = []models.Post{}
	}
	s.writeResponse(w, PostsResponse{Posts: posts})
}

// handleCreatePost stores a new post and returns it with its assigned ID
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := s.parseRequest(r, &req); err != nil {
		s.writeErrorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.writeErrorResponse(w, "invalid post: "+err.Error(), http.StatusBadRequest)
		return
	}

	post := s.deps.Posts.Add(models.Post{
		Title:   req.Title,
		Summary: req.Summary,
		Body:    req.Body,
		Link:    req.Link,
		Tags:    req.Tags,
	})
	s.writeResponseStatus(w, post, http.StatusCreated)
}

// handleGetPost returns one post by ID
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeErrorResponse(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, ok := s.deps.Posts.Get(id)
	if !ok {
		s.writeErrorResponse(w, "post not found", http.StatusNotFound)
		return
	}
	s.writeResponse(w, post)
}

// handleFeed serves the RSS rendering of the newest posts
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	xml, err := s.deps.Feed.RSS()
	if err != nil {
		s.logger.Error("Feed rendering failed", zap.Error(err))
		s.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write(xml); err != nil {
		s.logger.Error("Failed to write feed", zap.Error(err))
	}
}
