package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog"
	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog/store/rest"
)

func TestNew_RequiresEndpoint(t *testing.T) {
	_, err := rest.New(rest.Config{})
	assert.ErrorIs(t, err, zenblog.ErrInvalidConfig)
}

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]*zenblog.Post{
			{ID: "1", Title: "One"},
			{ID: "2", Title: "Two"},
		})
	}))
	t.Cleanup(srv.Close)

	store, err := rest.New(rest.Config{Endpoint: srv.URL + "/posts", Token: "secret"})
	require.NoError(t, err)

	posts, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "One", posts[0].Title)
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/posts/p1":
			assert.Equal(t, http.MethodGet, r.Method)
			json.NewEncoder(w).Encode(&zenblog.Post{ID: "p1", Title: "Found"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	store, err := rest.New(rest.Config{Endpoint: srv.URL + "/posts"})
	require.NoError(t, err)

	post, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Found", post.Title)

	_, err = store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, zenblog.ErrPostNotFound)
}

func TestInsert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var post zenblog.Post
		require.NoError(t, json.NewDecoder(r.Body).Decode(&post))
		assert.Equal(t, "New", post.Title)

		// The server assigns its own canonical identifier
		post.ID = "server-id"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(&post)
	}))
	t.Cleanup(srv.Close)

	store, err := rest.New(rest.Config{Endpoint: srv.URL})
	require.NoError(t, err)

	created, err := store.Insert(context.Background(), &zenblog.Post{ID: "client-id", Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "server-id", created.ID)
}

func TestUpdate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/p1", r.URL.Path)

		// The body carries exactly the supplied fields
		var patch map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		assert.Equal(t, map[string]any{"status": "published"}, patch)

		json.NewEncoder(w).Encode(&zenblog.Post{
			ID:     "p1",
			Title:  "Kept",
			Status: zenblog.StatusPublished,
		})
	}))
	t.Cleanup(srv.Close)

	store, err := rest.New(rest.Config{Endpoint: srv.URL})
	require.NoError(t, err)

	updated, err := store.Update(context.Background(), "p1", zenblog.UpdatePostRequest{
		Status: zenblog.Status(zenblog.StatusPublished),
	})
	require.NoError(t, err)
	assert.Equal(t, zenblog.StatusPublished, updated.Status)
	assert.Equal(t, "Kept", updated.Title)
}

func TestUpdate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	t.Cleanup(srv.Close)

	store, err := rest.New(rest.Config{Endpoint: srv.URL})
	require.NoError(t, err)

	_, err = store.Update(context.Background(), "missing", zenblog.UpdatePostRequest{
		Title: zenblog.String("x"),
	})
	assert.ErrorIs(t, err, zenblog.ErrPostNotFound)
}

func TestDelete_ToleratesMissing(t *testing.T) {
	var deletes int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deletes++
		if deletes > 1 {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	store, err := rest.New(rest.Config{Endpoint: srv.URL})
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "p1"))
	// A 404 on a repeat delete is not an error
	require.NoError(t, store.Delete(context.Background(), "p1"))
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	store, err := rest.New(rest.Config{Endpoint: srv.URL})
	require.NoError(t, err)

	_, err = store.List(context.Background())
	assert.ErrorIs(t, err, zenblog.ErrStoreUnavailable)
}
