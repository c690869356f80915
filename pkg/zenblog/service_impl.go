package zenblog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	snapshotKey = "posts:last-known"
	snapshotTTL = 15 * time.Minute
)

// service implements the Service interface
type service struct {
	store     Store
	fallback  Store
	eventSink EventSink
	logger    *slog.Logger
	snapshot  *gocache.Cache
	now       func() time.Time
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithStore sets the primary storage backend for the service
func WithStore(store Store) Option {
	return func(s *service) {
		s.store = store
	}
}

// WithFallbackStore sets a secondary backend consulted by ListPosts when the
// primary is unreachable. Writes never touch the fallback.
func WithFallbackStore(store Store) Option {
	return func(s *service) {
		s.fallback = store
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithLogger sets the structured logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// WithClock overrides the time source used to stamp created_at. Intended for
// tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		snapshot: gocache.New(snapshotTTL, 2*snapshotTTL),
		now:      time.Now,
	}

	for _, option := range options {
		option(s)
	}

	if s.store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

// Post operations

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	post := s.normalize(req)

	created, err := s.store.Insert(ctx, post)
	if err != nil {
		return nil, &PostError{PostID: post.ID, Op: "create", Err: err}
	}

	s.fire(ctx, func(sink EventSink) error { return sink.PostCreated(ctx, created) })

	return created, nil
}

// normalize synthesizes a complete post from partial input. A fresh id is
// always assigned; backends may substitute their own canonical id on insert.
func (s *service) normalize(req CreatePostRequest) *Post {
	now := s.now().UTC()

	post := &Post{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Slug:       req.Slug,
		Content:    req.Content,
		Category:   req.Category,
		Status:     req.Status,
		SEOMeta:    req.SEOMeta,
		AuthorName: req.AuthorName,
		CreatedAt:  now,
	}

	if post.Title == "" {
		post.Title = DefaultTitle
	}
	if post.Category == "" {
		post.Category = DefaultCategory
	}
	if !post.Status.Valid() {
		post.Status = StatusDraft
	}
	if post.Slug == "" {
		post.Slug = Slugify(req.Title)
	}
	if post.Slug == "" {
		post.Slug = fmt.Sprintf("untitled-%d", now.UnixMilli())
	}

	return post
}

func (s *service) GetPost(ctx context.Context, id string) (*Post, error) {
	return s.store.Get(ctx, id)
}

func (s *service) UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*Post, error) {
	wasDraft := false
	if req.Status != nil && *req.Status == StatusPublished {
		if prev, err := s.store.Get(ctx, id); err == nil {
			wasDraft = prev.Status == StatusDraft
		}
	}

	updated, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, &PostError{PostID: id, Op: "update", Err: err}
	}

	s.fire(ctx, func(sink EventSink) error { return sink.PostUpdated(ctx, updated) })
	if wasDraft && updated.Published() {
		s.fire(ctx, func(sink EventSink) error { return sink.PostPublished(ctx, updated) })
	}

	return updated, nil
}

func (s *service) DeletePost(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return &PostError{PostID: id, Op: "delete", Err: err}
	}

	s.fire(ctx, func(sink EventSink) error { return sink.PostDeleted(ctx, id) })

	return nil
}

// Listing

// ListPosts never surfaces a backend outage: it degrades to the fallback
// store, then to the last successful snapshot, then to an empty result.
func (s *service) ListPosts(ctx context.Context) ([]*Post, error) {
	posts, err := s.store.List(ctx)
	if err == nil {
		s.snapshot.Set(snapshotKey, posts, gocache.DefaultExpiration)
		return posts, nil
	}

	if !errors.Is(err, ErrStoreUnavailable) {
		return nil, &PostError{Op: "list", Err: err}
	}

	s.logger.Warn("primary store unreachable, degrading list", "error", err)

	if s.fallback != nil {
		posts, ferr := s.fallback.List(ctx)
		if ferr == nil {
			return posts, nil
		}
		s.logger.Warn("fallback store unreachable", "error", ferr)
	}

	if cached, ok := s.snapshot.Get(snapshotKey); ok {
		return cached.([]*Post), nil
	}

	return []*Post{}, nil
}

func (s *service) PublishedPosts(ctx context.Context) ([]*Post, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]*Post, 0, len(posts))
	for _, post := range posts {
		if post.Published() {
			published = append(published, post)
		}
	}
	return published, nil
}

// GetStats counts the same post set ListPosts returns; it is never a
// separate count query that could disagree with the listing.
func (s *service) GetStats(ctx context.Context) (*DashboardStats, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{Total: len(posts)}
	for _, post := range posts {
		if post.Published() {
			stats.Published++
		} else {
			stats.Drafts++
		}
	}
	return stats, nil
}

// fire delivers an event to the sink, logging but never propagating sink
// failures.
func (s *service) fire(ctx context.Context, deliver func(EventSink) error) {
	if s.eventSink == nil {
		return
	}
	if err := deliver(s.eventSink); err != nil {
		s.logger.Error("event sink failed", "error", err)
	}
}
