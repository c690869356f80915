package localfile_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog"
	"github.com/mdsahadathossenshihab/zenblog/pkg/zenblog/store/localfile"
)

func newStore(t *testing.T) *localfile.Store {
	t.Helper()
	store, err := localfile.New(localfile.Config{Dir: t.TempDir()})
	require.NoError(t, err)
	return store
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := localfile.New(localfile.Config{})
	assert.Error(t, err)
}

func TestFirstAccessSeedsOnePost(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	posts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	seed := posts[0]
	assert.NotEmpty(t, seed.ID)
	assert.NotEmpty(t, seed.Title)
	assert.True(t, seed.Published())

	// The seed is persisted, not regenerated per call
	again, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, seed.ID, again[0].ID)
}

func TestCRUDRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	inserted, err := store.Insert(ctx, &zenblog.Post{
		ID:       "p1",
		Title:    "On Disk",
		Slug:     "on-disk",
		Category: zenblog.DefaultCategory,
		Status:   zenblog.StatusDraft,
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, "On Disk", got.Title)

	// New posts go in front of the seed
	posts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)

	updated, err := store.Update(ctx, "p1", zenblog.UpdatePostRequest{
		Status: zenblog.Status(zenblog.StatusPublished),
	})
	require.NoError(t, err)
	assert.Equal(t, zenblog.StatusPublished, updated.Status)
	assert.Equal(t, "On Disk", updated.Title)

	require.NoError(t, store.Delete(ctx, "p1"))
	require.NoError(t, store.Delete(ctx, "p1"))

	_, err = store.Get(ctx, "p1")
	assert.ErrorIs(t, err, zenblog.ErrPostNotFound)
}

func TestUpdate_NotFound(t *testing.T) {
	store := newStore(t)

	_, err := store.Update(context.Background(), "missing", zenblog.UpdatePostRequest{
		Title: zenblog.String("x"),
	})
	assert.ErrorIs(t, err, zenblog.ErrPostNotFound)
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := localfile.New(localfile.Config{Dir: dir})
	require.NoError(t, err)

	_, err = store.Insert(ctx, &zenblog.Post{ID: "p1", Title: "Persisted"})
	require.NoError(t, err)

	reopened, err := localfile.New(localfile.Config{Dir: dir})
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Persisted", got.Title)
}

func TestFileHoldsWholeSequenceAsJSON(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, &zenblog.Post{ID: "p1", Title: "A"})
	require.NoError(t, err)
	_, err = store.Insert(ctx, &zenblog.Post{ID: "p2", Title: "B"})
	require.NoError(t, err)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var posts []*zenblog.Post
	require.NoError(t, json.Unmarshal(data, &posts))
	assert.Len(t, posts, 3) // two inserts plus the seed

	// No leftover temp file from the atomic rewrite
	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))

	assert.Equal(t, localfile.FileName, filepath.Base(store.Path()))
}

func TestCorruptFileReportsUnavailable(t *testing.T) {
	dir := t.TempDir()
	store, err := localfile.New(localfile.Config{Dir: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	_, err = store.List(context.Background())
	assert.ErrorIs(t, err, zenblog.ErrStoreUnavailable)
}
