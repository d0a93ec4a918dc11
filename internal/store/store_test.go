package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jpl-au/pubd/internal/store"
	"github.com/jpl-au/pubd/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupStore creates a temporary SQLite store for testing.
// Returns the store and a cleanup function.
func setupStore(t *testing.T) (*store.SQLiteStore, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "pubd-store-test-*")
	require.NoError(t, err)

	s, err := store.Open(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Init())

	cleanup := func() {
		s.Close()
		os.RemoveAll(tmpDir)
	}
	return s, cleanup
}

func create(t *testing.T, s *store.SQLiteStore, path, content string) *store.Object {
	t.Helper()
	o, err := s.Create(context.Background(), path, content, store.CreateOptions{Author: "alice"})
	require.NoError(t, err)
	return o
}

// --- Basic CRUD Tests ---

func TestStore_CreateAndGet(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	o := create(t, s, "/docs/readme/", "# README")
	assert.Equal(t, "docs/readme", o.Path)
	assert.Equal(t, 1, o.Revision)
	assert.Len(t, o.Key, 8)
	assert.Empty(t, o.Tags())

	got, err := s.Get(ctx, "docs/readme", false)
	require.NoError(t, err)
	assert.Equal(t, o.Key, got.Key)
	assert.Equal(t, "# README", got.Content)
	assert.Equal(t, "alice", got.Author)
	assert.Equal(t, store.Tags{}, got.Tags())
	assert.Nil(t, got.DeletedAt)
}

func TestStore_CreateDuplicate(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	create(t, s, "docs/a", "one")
	_, err := s.Create(context.Background(), "docs/a", "two", store.CreateOptions{})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestStore_CreateValidation(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.Create(ctx, "", "x", store.CreateOptions{})
	assert.ErrorIs(t, err, validate.ErrInvalidPath)

	_, err = s.Create(ctx, "docs/big", "too long", store.CreateOptions{MaxContent: 3})
	assert.ErrorIs(t, err, validate.ErrContentTooLarge)
}

func TestStore_ByKey(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	o := create(t, s, "docs/test", "content")

	got, err := s.ByKey(ctx, o.Key)
	require.NoError(t, err)
	assert.Equal(t, "docs/test", got.Path)

	_, err = s.ByKey(ctx, "badkey00")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_NotFound(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()

	_, err := s.Get(context.Background(), "nonexistent", false)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// --- Save Tests ---

func TestStore_SaveTags(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	o := create(t, s, "docs/a", "body")
	o.SetTags(o.Tags().Append(store.Tag{"draft"}).Append(store.Public()))
	require.NoError(t, o.Save(ctx))
	assert.Equal(t, 2, o.Revision)
	assert.False(t, o.IsModified(store.FieldTags))

	got, err := s.Get(ctx, "docs/a", false)
	require.NoError(t, err)
	assert.Equal(t, store.Tags{{"draft"}, {"public"}}, got.Tags())
	assert.True(t, got.Published())
	assert.Equal(t, 2, got.Revision)
}

func TestStore_SaveNothingModified(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	o := create(t, s, "docs/a", "body")
	require.NoError(t, o.Save(ctx))
	assert.Equal(t, 1, o.Revision)
}

func TestStore_SaveMarkModified(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	o := create(t, s, "docs/a", "body")
	o.MarkModified(store.FieldTags)
	require.NoError(t, o.Save(ctx))
	assert.Equal(t, 2, o.Revision, "flagged field is written even when unchanged")
}

func TestStore_SaveInvalidTag(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	o := create(t, s, "docs/a", "body")
	o.SetTags(store.Tags{{""}})
	err := o.Save(ctx)
	require.ErrorIs(t, err, validate.ErrInvalidTag)

	// In-memory change survives the failed save.
	assert.True(t, o.IsModified(store.FieldTags))

	got, err := s.Get(ctx, "docs/a", false)
	require.NoError(t, err)
	assert.Empty(t, got.Tags())
}

func TestStore_SaveMaxTags(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	s.SetLimits(store.Limits{MaxTags: 1})
	ctx := context.Background()

	o := create(t, s, "docs/a", "body")
	o.SetTags(store.Tags{{"a"}, {"b"}})
	assert.ErrorIs(t, o.Save(ctx), validate.ErrTooManyTags)
}

func TestStore_SaveDeleted(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	o := create(t, s, "docs/a", "body")
	require.NoError(t, s.Delete(ctx, "docs/a", store.DeleteOptions{}))

	o.SetTags(store.Tags{store.Public()})
	assert.ErrorIs(t, o.Save(ctx), store.ErrNotFound)
}

func TestStore_LastWriteWins(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	create(t, s, "docs/a", "body")
	first, err := s.Get(ctx, "docs/a", false)
	require.NoError(t, err)
	second, err := s.Get(ctx, "docs/a", false)
	require.NoError(t, err)

	first.SetTags(first.Tags().Append(store.Tag{"one"}))
	require.NoError(t, first.Save(ctx))
	second.SetTags(second.Tags().Append(store.Tag{"two"}))
	require.NoError(t, second.Save(ctx))

	got, err := s.Get(ctx, "docs/a", false)
	require.NoError(t, err)
	assert.Equal(t, store.Tags{{"two"}}, got.Tags())
	assert.Equal(t, 3, got.Revision)
}

func TestObject_SaveDetached(t *testing.T) {
	o := store.NewObject("docs/a", "", nil)
	assert.ErrorIs(t, o.Save(context.Background()), store.ErrDetached)
}

// --- List Tests ---

func TestStore_List(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	create(t, s, "docs/b", "")
	create(t, s, "docs/a", "")
	create(t, s, "notes/x", "")
	require.NoError(t, s.Delete(ctx, "notes/x", store.DeleteOptions{}))

	all, err := s.List(ctx, "", false, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "docs/a", all[0].Path)
	assert.Equal(t, "docs/b", all[1].Path)

	docs, err := s.List(ctx, "docs/", false, false)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	withDeleted, err := s.List(ctx, "", true, false)
	require.NoError(t, err)
	assert.Len(t, withDeleted, 3)

	trash, err := s.List(ctx, "", false, true)
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, "notes/x", trash[0].Path)
}

func TestStore_ListPrefixIsLiteral(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	for _, p := range []string{"blog/a", "Blog/b", "blog_x/c", "blogXx/d", "100%/e"} {
		o := create(t, s, p, "")
		o.SetTags(store.Tags{store.Public()})
		require.NoError(t, o.Save(ctx))
	}

	paths := func(objs []*store.Object) []string {
		var out []string
		for _, o := range objs {
			out = append(out, o.Path)
		}
		return out
	}

	got, err := s.List(ctx, "blog_", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"blog_x/c"}, paths(got))

	got, err = s.List(ctx, "Blog", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Blog/b"}, paths(got))

	got, err = s.List(ctx, "1%", false, false)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.ListPublished(ctx, "blog_")
	require.NoError(t, err)
	assert.Equal(t, []string{"blog_x/c"}, paths(got))

	got, err = s.ListPublished(ctx, "blog")
	require.NoError(t, err)
	assert.Equal(t, []string{"blog/a", "blogXx/d", "blog_x/c"}, paths(got))

	require.NoError(t, s.Delete(ctx, "blog/a", store.DeleteOptions{}))
	require.NoError(t, s.Delete(ctx, "Blog/b", store.DeleteOptions{}))
	n, err := s.Vacuum(ctx, nil, "B")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = s.Get(ctx, "blog/a", true)
	assert.NoError(t, err)
}

func TestStore_ListPublished(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	pub := create(t, s, "docs/pub", "")
	pub.SetTags(store.Tags{{"draft"}, store.Public()})
	require.NoError(t, pub.Save(ctx))

	extra := create(t, s, "docs/extra", "")
	extra.SetTags(store.Tags{{"public", "extra"}})
	require.NoError(t, extra.Save(ctx))

	create(t, s, "docs/plain", "")

	objs, err := s.ListPublished(ctx, "docs/")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, "docs/pub", objs[0].Path)
}

// --- Delete / Restore / Vacuum ---

func TestStore_DeleteRestore(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	o := create(t, s, "docs/a", "")
	o.SetTags(store.Tags{store.Public()})
	require.NoError(t, o.Save(ctx))

	require.NoError(t, s.Delete(ctx, "docs/a", store.DeleteOptions{}))
	_, err := s.Get(ctx, "docs/a", false)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "docs/a", store.DeleteOptions{}), store.ErrNotFound)

	deleted, err := s.Get(ctx, "docs/a", true)
	require.NoError(t, err)
	assert.NotNil(t, deleted.DeletedAt)

	require.NoError(t, s.Restore(ctx, "docs/a", store.RestoreOptions{}))
	got, err := s.Get(ctx, "docs/a", false)
	require.NoError(t, err)
	assert.True(t, got.Published())

	assert.ErrorIs(t, s.Restore(ctx, "docs/a", store.RestoreOptions{}), store.ErrNotFound)
}

func TestStore_Vacuum(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	create(t, s, "docs/a", "")
	create(t, s, "docs/b", "")
	require.NoError(t, s.Delete(ctx, "docs/a", store.DeleteOptions{}))

	hour := time.Hour
	n, err := s.Vacuum(ctx, &hour, "")
	require.NoError(t, err)
	assert.Zero(t, n, "recent deletions are kept")

	n, err = s.Vacuum(ctx, nil, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = s.Get(ctx, "docs/a", true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Stats(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	a := create(t, s, "docs/a", "")
	a.SetTags(store.Tags{{"draft"}, store.Public()})
	require.NoError(t, a.Save(ctx))
	create(t, s, "docs/b", "")
	create(t, s, "docs/c", "")
	require.NoError(t, s.Delete(ctx, "docs/c", store.DeleteOptions{}))

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.Objects)
	assert.Equal(t, int64(1), st.Deleted)
	assert.Equal(t, int64(1), st.Published)
	assert.Equal(t, int64(2), st.TagValues)
	assert.Equal(t, int64(1), st.Authors)
	assert.NotZero(t, st.OldestAt)
}

func TestStore_Checkpoint(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	assert.NoError(t, s.Checkpoint(context.Background()))
}

func TestStore_Migrations(t *testing.T) {
	s, cleanup := setupStore(t)
	defer cleanup()
	ctx := context.Background()

	v, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	create(t, s, "docs/a", "a")
	require.NoError(t, s.Init())
	_, err = s.Get(ctx, "docs/a", false)
	assert.NoError(t, err)
}

func TestObject_ToJSON(t *testing.T) {
	o := store.NewObject("docs/a", "body", store.Tags{store.Public()})
	j := o.ToJSON(false)
	assert.Empty(t, j.Content)
	assert.True(t, j.Published)
	assert.Equal(t, [][]string{{"public"}}, j.Tags)

	assert.Equal(t, "body", o.ToJSON(true).Content)

	empty := store.NewObject("docs/b", "", nil).ToJSON(false)
	assert.NotNil(t, empty.Tags)
}
