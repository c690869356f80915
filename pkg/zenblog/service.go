package zenblog

import "context"

// Service defines the main interface for the zenblog library
type Service interface {
	// Post operations
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	UpdatePost(ctx context.Context, id string, req UpdatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, id string) error

	// Listing
	ListPosts(ctx context.Context) ([]*Post, error)
	PublishedPosts(ctx context.Context) ([]*Post, error)

	// Dashboard statistics, computed strictly from ListPosts
	GetStats(ctx context.Context) (*DashboardStats, error)
}
