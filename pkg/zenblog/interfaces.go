package zenblog

import "context"

// Store defines the capability set every storage backend implements.
//
// Identifier formats are backend-specific (a Mongo ObjectID hex string, a
// UUID, an opaque local key); each backend resolves lookups for its own
// format and always exposes the flat Post.ID field to callers.
type Store interface {
	// List returns every post, newest first where the backend supports
	// ordering.
	List(ctx context.Context) ([]*Post, error)

	// Get returns the post with the given id, or ErrPostNotFound.
	Get(ctx context.Context, id string) (*Post, error)

	// Insert persists a fully populated post and returns it with the
	// backend's canonical identifier substituted in.
	Insert(ctx context.Context, post *Post) (*Post, error)

	// Update merge-patches the post with the given id and returns the
	// merged result, or ErrPostNotFound.
	Update(ctx context.Context, id string, patch UpdatePostRequest) (*Post, error)

	// Delete removes the post with the given id. Deleting a missing id is
	// not an error.
	Delete(ctx context.Context, id string) error
}

// EventSink defines the interface for post lifecycle event handling.
// Sink failures never fail the triggering operation.
type EventSink interface {
	// PostCreated is fired when a post is created
	PostCreated(ctx context.Context, post *Post) error

	// PostUpdated is fired when a post is updated
	PostUpdated(ctx context.Context, post *Post) error

	// PostPublished is fired when an update transitions a post to published
	PostPublished(ctx context.Context, post *Post) error

	// PostDeleted is fired when a post is deleted
	PostDeleted(ctx context.Context, postID string) error
}
