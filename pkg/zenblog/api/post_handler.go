package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog"
)

// PostHandler handles HTTP requests for blog posts using pkg/zenblog
type PostHandler struct {
	service zenblog.Service
	logger  *slog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(service zenblog.Service, logger *slog.Logger) *PostHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHandler{service: service, logger: logger}
}

// Routes returns the routes for posts
func (h *PostHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListPosts)
	r.Post("/", h.CreatePost)
	r.Get("/{id}", h.GetPost)
	r.Patch("/{id}", h.UpdatePost)
	r.Delete("/{id}", h.DeletePost)

	return r
}

// ListPosts returns all posts, optionally filtered by ?status=. The listing
// degrades rather than failing when the backend is unreachable, so the feed
// never 5xxs on a network outage.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	var (
		posts []*zenblog.Post
		err   error
	)

	switch status := r.URL.Query().Get("status"); status {
	case "":
		posts, err = h.service.ListPosts(r.Context())
	case string(zenblog.StatusPublished):
		posts, err = h.service.PublishedPosts(r.Context())
	case string(zenblog.StatusDraft):
		posts, err = h.service.ListPosts(r.Context())
		if err == nil {
			drafts := make([]*zenblog.Post, 0, len(posts))
			for _, post := range posts {
				if !post.Published() {
					drafts = append(drafts, post)
				}
			}
			posts = drafts
		}
	default:
		http.Error(w, "unknown status filter", http.StatusBadRequest)
		return
	}

	if err != nil {
		h.logger.Error("failed to list posts", "error", err)
		http.Error(w, "failed to list posts", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, posts)
}

// GetPost returns a single post by id
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		h.renderError(w, r, "get", id, err)
		return
	}

	render.JSON(w, r, post)
}

// CreatePost creates a new post from partial input
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req zenblog.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		h.renderError(w, r, "create", "", err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, post)
}

// UpdatePost merge-patches an existing post
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req zenblog.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), id, req)
	if err != nil {
		h.renderError(w, r, "update", id, err)
		return
	}

	render.JSON(w, r, post)
}

// DeletePost deletes a post; deleting a missing id succeeds
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		h.renderError(w, r, "delete", id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// renderError maps the library's error taxonomy onto HTTP statuses.
func (h *PostHandler) renderError(w http.ResponseWriter, r *http.Request, op, id string, err error) {
	switch {
	case errors.Is(err, zenblog.ErrPostNotFound):
		http.Error(w, "post not found", http.StatusNotFound)
	case errors.Is(err, zenblog.ErrStoreUnavailable):
		h.logger.Error("store unavailable", "op", op, "id", id, "error", err)
		http.Error(w, "storage backend unavailable", http.StatusBadGateway)
	default:
		h.logger.Error("post operation failed", "op", op, "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// StatsHandler handles HTTP requests for dashboard statistics
type StatsHandler struct {
	service zenblog.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service zenblog.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats returns dashboard statistics computed from the current post set
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		http.Error(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, stats)
}
