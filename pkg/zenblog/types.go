package zenblog

import "time"

// PostStatus is the domain type for post lifecycle states.
type PostStatus string

// Post status constants (typed).
const (
	StatusDraft     PostStatus = "draft"
	StatusPublished PostStatus = "published"
)

// Valid reports whether s is a known post status.
func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Defaults applied by CreatePost when the caller leaves fields empty.
const (
	DefaultTitle    = "Untitled Story"
	DefaultCategory = "Lifestyle"
)

// SEOMeta holds optional search metadata attached to a post.
type SEOMeta struct {
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// Post represents a single blog post.
//
// Content is an opaque blob (HTML or editor JSON); the library stores it as
// given and never inspects it. The JSON field names are the post's wire shape
// and are shared by every store backend.
type Post struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Content    string     `json:"content"`
	Category   string     `json:"category"`
	Status     PostStatus `json:"status"`
	SEOMeta    SEOMeta    `json:"seo_meta"`
	AuthorName string     `json:"author_name,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Published reports whether the post is visible in the public feed.
func (p *Post) Published() bool {
	return p.Status == StatusPublished
}

// DashboardStats is derived from the current post set, never stored.
// Total always equals Published plus Drafts.
type DashboardStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Drafts    int `json:"drafts"`
}
