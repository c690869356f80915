package zenblog

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrPostNotFound indicates a post was not found
	ErrPostNotFound = errors.New("post not found")

	// ErrStoreUnavailable indicates the storage backend could not be reached
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrInvalidConfig indicates the configuration is incomplete for the
	// selected storage mode
	ErrInvalidConfig = errors.New("invalid configuration")
)

// PostError represents an error related to post operations
type PostError struct {
	PostID string
	Op     string
	Err    error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post operation %s failed for post %q: %v", e.Op, e.PostID, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}

// StoreError represents an error related to a storage backend operation
type StoreError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store operation %s failed on backend %s: %v", e.Op, e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
