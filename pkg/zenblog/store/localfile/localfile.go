// Package localfile persists the full post set as one JSON document on the
// local filesystem. It is the fallback backend when no remote store is
// configured, and the read fallback for remote modes.
package localfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog"
)

// FileName is the single well-known key the post sequence lives under.
const FileName = "zenblog_posts_v1.json"

// Config options for the local file backend
type Config struct {
	// Dir is the directory holding the data file. Created if missing.
	Dir string
}

// Store implements zenblog.Store on a single JSON file. Every operation
// reads, rewrites and atomically replaces the whole sequence, which keeps a
// failed write from truncating existing data.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a new local file store
func New(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("data directory is required")
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{path: filepath.Join(cfg.Dir, FileName)}, nil
}

// Path returns the location of the data file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) List(ctx context.Context) ([]*zenblog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *Store) Get(ctx context.Context, id string) (*zenblog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if post.ID == id {
			return post, nil
		}
	}
	return nil, zenblog.ErrPostNotFound
}

func (s *Store) Insert(ctx context.Context, post *zenblog.Post) (*zenblog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return nil, err
	}

	postCopy := *post
	// Newest first, same order List returns
	posts = append([]*zenblog.Post{&postCopy}, posts...)

	if err := s.save(posts); err != nil {
		return nil, err
	}

	result := postCopy
	return &result, nil
}

func (s *Store) Update(ctx context.Context, id string, patch zenblog.UpdatePostRequest) (*zenblog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		if post.ID != id {
			continue
		}
		patch.Apply(post)
		if err := s.save(posts); err != nil {
			return nil, err
		}
		postCopy := *post
		return &postCopy, nil
	}
	return nil, zenblog.ErrPostNotFound
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return err
	}

	kept := posts[:0]
	for _, post := range posts {
		if post.ID != id {
			kept = append(kept, post)
		}
	}
	if len(kept) == len(posts) {
		// Nothing removed; deleting a missing id is not an error
		return nil
	}

	return s.save(kept)
}

// load reads the full sequence, seeding the file with one example post on
// first-ever access so a fresh installation is never empty.
func (s *Store) load() ([]*zenblog.Post, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		seeded := []*zenblog.Post{seedPost()}
		if err := s.save(seeded); err != nil {
			return nil, err
		}
		return seeded, nil
	}
	if err != nil {
		return nil, s.fail("read", err)
	}

	var posts []*zenblog.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, s.fail("decode", err)
	}
	return posts, nil
}

// save rewrites the whole sequence through a temp file and rename, so
// readers never observe a partially written file.
func (s *Store) save(posts []*zenblog.Post) error {
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return s.fail("encode", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return s.fail("write", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return s.fail("rename", err)
	}
	return nil
}

func (s *Store) fail(op string, err error) error {
	return &zenblog.StoreError{
		Backend: "localfile",
		Op:      op,
		Err:     fmt.Errorf("%w: %v", zenblog.ErrStoreUnavailable, err),
	}
}

func seedPost() *zenblog.Post {
	return &zenblog.Post{
		ID:       uuid.NewString(),
		Title:    "Welcome to Your Blog",
		Slug:     "welcome-to-your-blog",
		Content:  "<p>This is your first post. Open the dashboard to edit or delete it, or start writing a new story.</p>",
		Category: zenblog.DefaultCategory,
		Status:   zenblog.StatusPublished,
		SEOMeta: zenblog.SEOMeta{
			Description: "A starter post created on first run.",
			Keywords:    "blog, welcome",
		},
		CreatedAt: time.Now().UTC(),
	}
}
