package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog"
)

// Store implements zenblog.Store using in-memory storage
type Store struct {
	mu    sync.RWMutex
	posts map[string]*zenblog.Post
}

// New creates a new in-memory store
func New() *Store {
	return &Store{
		posts: make(map[string]*zenblog.Post),
	}
}

func (s *Store) List(ctx context.Context) ([]*zenblog.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*zenblog.Post, 0, len(s.posts))
	for _, post := range s.posts {
		// Return copies to prevent external modifications
		postCopy := *post
		result = append(result, &postCopy)
	}

	// Sort by created_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (s *Store) Get(ctx context.Context, id string) (*zenblog.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, zenblog.ErrPostNotFound
	}

	postCopy := *post
	return &postCopy, nil
}

func (s *Store) Insert(ctx context.Context, post *zenblog.Post) (*zenblog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create a copy to avoid external modifications
	postCopy := *post
	s.posts[post.ID] = &postCopy

	result := postCopy
	return &result, nil
}

func (s *Store) Update(ctx context.Context, id string, patch zenblog.UpdatePostRequest) (*zenblog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, zenblog.ErrPostNotFound
	}

	patch.Apply(post)

	postCopy := *post
	return &postCopy, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.posts, id)
	return nil
}
