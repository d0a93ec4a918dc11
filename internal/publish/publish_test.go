package publish

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObject records saves and can be told to fail them.
type fakeObject struct {
	tags     store.Tags
	modified []string
	saves    int
	saveErr  error
	saved    store.Tags // tags as of the last successful save
}

func newFake(tags ...store.Tag) *fakeObject {
	return &fakeObject{tags: store.Tags(tags)}
}

func (f *fakeObject) Tags() store.Tags          { return f.tags }
func (f *fakeObject) SetTags(t store.Tags)      { f.tags = t }
func (f *fakeObject) MarkModified(field string) { f.modified = append(f.modified, field) }

func (f *fakeObject) Save(ctx context.Context) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.saved = f.tags.Clone()
	return nil
}

func count(ts store.Tags, t store.Tag) int {
	n := 0
	for _, v := range ts {
		if v.Equal(t) {
			n++
		}
	}
	return n
}

func TestPublish_AppendsMarker(t *testing.T) {
	cases := []store.Tags{
		nil,
		{{"draft"}},
		{{"a"}, {"public", "extra"}, {"Public"}},
	}
	for _, tags := range cases {
		o := &fakeObject{tags: tags.Clone()}
		got, err := Publish(context.Background(), o)
		require.NoError(t, err)
		assert.Same(t, o, got)

		assert.Equal(t, 1, count(o.tags, Marker()))
		assert.Equal(t, Marker(), o.tags[len(o.tags)-1], "marker is appended last")
		assert.True(t, tags.Equal(o.tags[:len(o.tags)-1]), "prior entries untouched")
		assert.Equal(t, 1, o.saves)
		assert.Equal(t, o.tags, o.saved)
	}
}

func TestPublish_AlreadyPublished(t *testing.T) {
	o := newFake(store.Tag{"draft"}, store.Public())
	before := o.tags.Clone()

	got, err := Publish(context.Background(), o)
	assert.Nil(t, got)
	require.ErrorIs(t, err, ErrConflict)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 409, pe.Code)
	assert.Equal(t, MsgAlreadyPublished, pe.Message)
	assert.Equal(t, KindConflict, pe.Kind)

	assert.Equal(t, before, o.tags)
	assert.Zero(t, o.saves)
}

func TestUnpublish_RemovesAllMarkers(t *testing.T) {
	o := newFake(store.Public(), store.Tag{"a"}, store.Public(), store.Tag{"public", "extra"}, store.Tag{"b"})

	got, err := Unpublish(context.Background(), o)
	require.NoError(t, err)
	assert.Same(t, o, got)

	assert.Zero(t, count(o.tags, Marker()))
	assert.Equal(t, store.Tags{{"a"}, {"public", "extra"}, {"b"}}, o.tags)
	assert.Equal(t, []string{store.FieldTags}, o.modified)
	assert.Equal(t, 1, o.saves)
}

func TestUnpublish_AlreadyUnpublished(t *testing.T) {
	o := newFake(store.Tag{"draft"}, store.Tag{"public", "extra"})
	before := o.tags.Clone()

	got, err := Unpublish(context.Background(), o)
	assert.Nil(t, got)
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 409, StatusCode(err))
	assert.Equal(t, MsgAlreadyUnpublished, err.Error())

	assert.Equal(t, before, o.tags)
	assert.Empty(t, o.modified)
	assert.Zero(t, o.saves)
}

func TestPublishThenUnpublish_RestoresTags(t *testing.T) {
	o := newFake(store.Tag{"x"}, store.Tag{"y", "z"})
	before := o.tags.Clone()

	_, err := Publish(context.Background(), o)
	require.NoError(t, err)
	_, err = Unpublish(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, before, o.tags)
}

func TestDraftScenario(t *testing.T) {
	ctx := context.Background()
	o := newFake(store.Tag{"draft"})

	_, err := Publish(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, store.Tags{{"draft"}, {"public"}}, o.tags)

	_, err = Publish(ctx, o)
	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 409, pe.Code)
	assert.Equal(t, "Object already published", pe.Message)
	assert.Equal(t, store.Tags{{"draft"}, {"public"}}, o.tags)

	_, err = Unpublish(ctx, o)
	require.NoError(t, err)
	assert.Equal(t, store.Tags{{"draft"}}, o.tags)

	_, err = Unpublish(ctx, o)
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 409, pe.Code)
	assert.Equal(t, "Object already unpublished", pe.Message)
}

func TestPublish_SaveFailureKeepsMarker(t *testing.T) {
	saveErr := errors.New("validation error")
	o := newFake(store.Tag{"draft"})
	o.saveErr = saveErr

	got, err := Publish(context.Background(), o)
	assert.Nil(t, got)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 400, pe.Code)
	assert.Equal(t, "validation error", pe.Message)
	assert.Equal(t, KindPersistence, pe.Kind)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, saveErr)

	assert.Equal(t, store.Tags{{"draft"}, {"public"}}, o.tags)
	assert.Nil(t, o.saved)
}

func TestUnpublish_SaveFailureKeepsRemoval(t *testing.T) {
	o := newFake(store.Tag{"draft"}, store.Public())
	o.saveErr = errors.New("connection reset")

	_, err := Unpublish(context.Background(), o)
	assert.Equal(t, 400, StatusCode(err))
	assert.Equal(t, "connection reset", err.Error())
	assert.Equal(t, store.Tags{{"draft"}}, o.tags)
}

func TestPublish_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := newFake()
	_, err := Publish(ctx, o)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 400, StatusCode(err))
}

func TestPublish_SharedReference(t *testing.T) {
	o := newFake(store.Tag{"draft"})
	other := o

	_, err := Publish(context.Background(), o)
	require.NoError(t, err)
	assert.True(t, Published(other))
}

func TestPublish_StoreObject(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Init())

	o, err := s.Create(ctx, "docs/a", "body", store.CreateOptions{Author: "alice"})
	require.NoError(t, err)
	o.SetTags(store.Tags{{"draft"}})
	require.NoError(t, o.Save(ctx))

	_, err = Publish(ctx, o)
	require.NoError(t, err)

	got, err := s.Get(ctx, "docs/a", false)
	require.NoError(t, err)
	assert.Equal(t, store.Tags{{"draft"}, {"public"}}, got.Tags())

	_, err = Unpublish(ctx, got)
	require.NoError(t, err)

	got, err = s.Get(ctx, "docs/a", false)
	require.NoError(t, err)
	assert.Equal(t, store.Tags{{"draft"}}, got.Tags())
	assert.Equal(t, 4, got.Revision)
}

func TestConflictIsLogged(t *testing.T) {
	require.NoError(t, log.OpenAt(filepath.Join(t.TempDir(), "log.db")))
	defer log.Close()

	_, err := Publish(context.Background(), newFake(store.Public()))
	require.Error(t, err)
	_, err = Unpublish(context.Background(), newFake(store.Tag{"draft"}))
	require.Error(t, err)

	entries, err := log.Recent(log.Filter{Source: "publish:conflict"})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "unpublish", entries[0].Action)
	assert.Equal(t, MsgAlreadyUnpublished, entries[0].Error)
	assert.Equal(t, []any{}, entries[0].Detail["removed"])

	assert.Equal(t, "publish", entries[1].Action)
	assert.Equal(t, []any{"public"}, entries[1].Detail["marker"])
}

func TestStatusCode(t *testing.T) {
	assert.Zero(t, StatusCode(nil))
	assert.Zero(t, StatusCode(errors.New("plain")))
	assert.Equal(t, 409, StatusCode(conflict(MsgAlreadyPublished)))
	assert.Equal(t, 400, StatusCode(persistence(errors.New("x"))))
	assert.False(t, errors.Is(conflict("x"), ErrPersistence))
	assert.Equal(t, "conflict", KindConflict.String())
}
