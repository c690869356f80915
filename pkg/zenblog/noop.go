package zenblog

import (
	"context"
	"log/slog"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// PostCreated does nothing and returns nil
func (n *NoopEventSink) PostCreated(ctx context.Context, post *Post) error {
	return nil
}

// PostUpdated does nothing and returns nil
func (n *NoopEventSink) PostUpdated(ctx context.Context, post *Post) error {
	return nil
}

// PostPublished does nothing and returns nil
func (n *NoopEventSink) PostPublished(ctx context.Context, post *Post) error {
	return nil
}

// PostDeleted does nothing and returns nil
func (n *NoopEventSink) PostDeleted(ctx context.Context, postID string) error {
	return nil
}

// LoggingEventSink is an event sink that logs events but takes no other
// action. Useful for development and debugging.
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates a new logging event sink
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

// PostCreated logs the post creation event
func (l *LoggingEventSink) PostCreated(ctx context.Context, post *Post) error {
	l.logger.Info("post created", "id", post.ID, "slug", post.Slug, "status", post.Status)
	return nil
}

// PostUpdated logs the post update event
func (l *LoggingEventSink) PostUpdated(ctx context.Context, post *Post) error {
	l.logger.Info("post updated", "id", post.ID, "slug", post.Slug)
	return nil
}

// PostPublished logs the draft-to-published transition
func (l *LoggingEventSink) PostPublished(ctx context.Context, post *Post) error {
	l.logger.Info("post published", "id", post.ID, "slug", post.Slug)
	return nil
}

// PostDeleted logs the post deletion event
func (l *LoggingEventSink) PostDeleted(ctx context.Context, postID string) error {
	l.logger.Info("post deleted", "id", postID)
	return nil
}
