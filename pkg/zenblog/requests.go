package zenblog

// Request DTOs

// CreatePostRequest contains parameters for creating a new post. Every field
// is optional; CreatePost synthesizes defaults for whatever is missing. A
// caller-supplied ID is ignored: the service always assigns a fresh one.
type CreatePostRequest struct {
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Content    string     `json:"content"`
	Category   string     `json:"category"`
	Status     PostStatus `json:"status"`
	SEOMeta    SEOMeta    `json:"seo_meta"`
	AuthorName string     `json:"author_name"`
}

// UpdatePostRequest contains parameters for a merge-patch update. Nil fields
// are left untouched; non-nil fields replace the stored value. The JSON
// encoding of the struct is exactly the set of supplied fields, so backends
// can marshal it directly as a merge-patch body.
type UpdatePostRequest struct {
	Title      *string     `json:"title,omitempty"`
	Slug       *string     `json:"slug,omitempty"`
	Content    *string     `json:"content,omitempty"`
	Category   *string     `json:"category,omitempty"`
	Status     *PostStatus `json:"status,omitempty"`
	SEOMeta    *SEOMeta    `json:"seo_meta,omitempty"`
	AuthorName *string     `json:"author_name,omitempty"`
}

// Apply merges the supplied fields into post, leaving the rest untouched.
func (r UpdatePostRequest) Apply(post *Post) {
	if r.Title != nil {
		post.Title = *r.Title
	}
	if r.Slug != nil {
		post.Slug = *r.Slug
	}
	if r.Content != nil {
		post.Content = *r.Content
	}
	if r.Category != nil {
		post.Category = *r.Category
	}
	if r.Status != nil {
		post.Status = *r.Status
	}
	if r.SEOMeta != nil {
		post.SEOMeta = *r.SEOMeta
	}
	if r.AuthorName != nil {
		post.AuthorName = *r.AuthorName
	}
}

// IsZero reports whether the request carries no fields at all.
func (r UpdatePostRequest) IsZero() bool {
	return r.Title == nil && r.Slug == nil && r.Content == nil &&
		r.Category == nil && r.Status == nil && r.SEOMeta == nil &&
		r.AuthorName == nil
}

// String returns a pointer to s, for building UpdatePostRequest literals.
func String(s string) *string { return &s }

// Status returns a pointer to s, for building UpdatePostRequest literals.
func Status(s PostStatus) *PostStatus { return &s }
