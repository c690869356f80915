// Package rest implements zenblog.Store against a conventional JSON REST
// endpoint: GET / for list, GET /{id} for one, POST / for create,
// PATCH /{id} for update and DELETE /{id} for delete. Bodies are plain
// posts, no envelope.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog"
)

// Config options for the generic REST backend
type Config struct {
	Endpoint string // base URL of the posts collection
	Token    string // optional bearer credential

	// HTTPClient overrides the default client. Intended for tests.
	HTTPClient *http.Client
}

// Store implements zenblog.Store over plain REST conventions.
type Store struct {
	endpoint string
	token    string
	client   *http.Client
}

// New creates a new generic REST store
func New(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", zenblog.ErrInvalidConfig)
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Store{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		token:    cfg.Token,
		client:   cfg.HTTPClient,
	}, nil
}

func (s *Store) List(ctx context.Context) ([]*zenblog.Post, error) {
	var posts []*zenblog.Post
	if err := s.do(ctx, http.MethodGet, "", nil, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*zenblog.Post{}
	}
	return posts, nil
}

func (s *Store) Get(ctx context.Context, id string) (*zenblog.Post, error) {
	var post zenblog.Post
	if err := s.do(ctx, http.MethodGet, "/"+id, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Store) Insert(ctx context.Context, post *zenblog.Post) (*zenblog.Post, error) {
	var created zenblog.Post
	if err := s.do(ctx, http.MethodPost, "", post, &created); err != nil {
		return nil, err
	}
	if created.ID == "" {
		// Server echoed nothing useful; trust what we sent
		created = *post
	}
	return &created, nil
}

func (s *Store) Update(ctx context.Context, id string, patch zenblog.UpdatePostRequest) (*zenblog.Post, error) {
	var updated zenblog.Post
	if err := s.do(ctx, http.MethodPatch, "/"+id, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	err := s.do(ctx, http.MethodDelete, "/"+id, nil, nil)
	if err == nil || errors.Is(err, zenblog.ErrPostNotFound) {
		// Deleting a missing id is not an error
		return nil
	}
	return err
}

// do performs one REST call. 404 maps to ErrPostNotFound, transport failures
// and other non-2xx responses to ErrStoreUnavailable. No retries.
func (s *Store) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return s.fail(method, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.endpoint+path, body)
	if err != nil {
		return s.fail(method, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return s.fail(method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return zenblog.ErrPostNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return s.fail(method, fmt.Errorf("unexpected status %s", resp.Status))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return s.fail(method, err)
	}
	return nil
}

func (s *Store) fail(op string, err error) error {
	return &zenblog.StoreError{
		Backend: "rest",
		Op:      op,
		Err:     fmt.Errorf("%w: %v", zenblog.ErrStoreUnavailable, err),
	}
}
