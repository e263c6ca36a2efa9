package news

import (
	"sync"
	"time"

	"github.com/ninotmecheast-source/trivia/internal/models"
)

// DefaultMaxPosts caps how many posts the store keeps.
const DefaultMaxPosts = 100

// Store holds news posts in memory, newest first, dropping the oldest past
// the cap. Every accepted post bumps a generation counter that rendered-feed
// caching keys off.
type Store struct {
	mu       sync.Mutex
	posts    []models.Post // newest first
	nextID   int64
	gen      uint64
	maxPosts int
	now      func() time.Time
}

// NewStore creates an empty post store keeping at most maxPosts posts. A cap
// of zero or less falls back to DefaultMaxPosts.
func NewStore(maxPosts int) *Store {
	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}
	return &Store{
		maxPosts: maxPosts,
		nextID:   1,
		now:      time.Now,
	}
}

// Add stores a post, assigning its ID and creation time, and returns the
// stored copy.
func (s *Store) Add(post models.Post) models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextID
	s.nextID++
	post.CreatedAt = s.now()

	s.posts = append([]models.Post{post}, s.posts...)
	if len(s.posts) > s.maxPosts {
		s.posts = s.posts[:s.maxPosts]
	}
	s.gen++

	return post
}

// List returns up to limit posts, newest first. A limit of zero or less
// returns everything.
func (s *Store) List(limit int) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.posts)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]models.Post(nil), s.posts[:n]...)
}

// Get returns the post with the given id.
func (s *Store) Get(id int64) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, post := range s.posts {
		if post.ID == id {
			return post, true
		}
	}
	return models.Post{}, false
}

// Len reports how many posts are held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// Generation changes on every accepted post, so cache keys derived from it
// go stale on every write.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
