package format

import (
	"bytes"
	"testing"

	"github.com/jpl-au/pubd/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obj(key, path string, tags ...store.Tag) *store.Object {
	o := store.NewObject(path, "hello", tags)
	o.Key = key
	o.Revision = 1
	o.Author = "alice"
	return o
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512B", humanSize(512))
	assert.Equal(t, "1.5K", humanSize(1536))
	assert.Equal(t, "2.0M", humanSize(2<<20))
}

func TestList(t *testing.T) {
	var deletedAt int64 = 1
	gone := obj("cccccccc", "notes/c")
	gone.DeletedAt = &deletedAt

	var buf bytes.Buffer
	require.NoError(t, List(&buf, []*store.Object{
		obj("aaaaaaaa", "docs/a", store.Public()),
		obj("bbbbbbbb", "docs/b", store.Tag{"public", "extra"}),
		gone,
	}))
	assert.Equal(t, "aaaaaaaa  [public] docs/a\nbbbbbbbb  docs/b\ncccccccc  [deleted] notes/c\n", buf.String())
}

func TestLong(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Long(&buf, []*store.Object{obj("aaaaaaaa", "docs/a", store.Public())}))
	out := buf.String()
	assert.Contains(t, out, "REV")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "docs/a")

	buf.Reset()
	require.NoError(t, Long(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Tree(&buf, []*store.Object{
		obj("aaaaaaaa", "docs/a", store.Public()),
		obj("bbbbbbbb", "docs/b"),
	}))
	assert.Equal(t, "└── docs/\n    ├── a [public]\n    └── b\n", buf.String())
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Stats(&buf, &store.Stats{Objects: 3, Published: 1}))
	assert.Contains(t, buf.String(), "Published   1")
	assert.Contains(t, buf.String(), "Oldest      -")
}
