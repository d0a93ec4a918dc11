package log

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a temp database for the duration of a test.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	orig := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = orig
	})
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open and close", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		SetProject("/test/project/.pubd")

		Log(Entry{
			Source:   "object:show",
			Author:   "test-user",
			Action:   "read",
			Path:     "docs/readme",
			Revision: 3,
			Success:  true,
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var source, action, path string
		var revision, success int
		err = db.QueryRow("SELECT source, action, path, revision, success FROM log ORDER BY id DESC LIMIT 1").
			Scan(&source, &action, &path, &revision, &success)
		require.NoError(t, err)
		assert.Equal(t, "object:show", source)
		assert.Equal(t, "read", action)
		assert.Equal(t, "docs/readme", path)
		assert.Equal(t, 3, revision)
		assert.Equal(t, 1, success)
	})

	t.Run("builder records error", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("publish:conflict", "publish").
			Path("docs/a").
			Detail("marker", []string{"public"}).
			Write(errors.New("Object already published"))

		entries, err := Recent(Filter{Source: "publish:conflict", Limit: 1})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		e := entries[0]
		assert.False(t, e.Success)
		assert.Equal(t, "Object already published", e.Error)
		assert.Equal(t, "docs/a", e.Path)
		assert.Equal(t, []any{"public"}, e.Detail["marker"])
	})

	t.Run("builder records resolution", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		Event("object:show", "read").
			Path("Docs/Readme").
			Revision(2).
			Resolved("docs/readme").
			ResultRevision(2).
			Write(nil)

		entries, err := Recent(Filter{Source: "object:show", Path: "Docs/Readme", Limit: 1})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "docs/readme", entries[0].ResolvedPath)
		assert.Equal(t, 2, entries[0].ResultRevision)
		assert.Equal(t, 2, entries[0].Revision)
	})

	t.Run("recent filters", func(t *testing.T) {
		require.NoError(t, Open())
		defer Close()

		SetProject("/other/.pubd")
		Event("tag:add", "tag").Path("docs/x").Write(nil)
		Event("tag:add", "tag").Path("docs/y").Write(nil)

		entries, err := Recent(Filter{Source: "tag:add", Path: "docs/y"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Success)

		entries, err = Recent(Filter{Project: true})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestLogWithoutOpen(t *testing.T) {
	Close()
	// Must not panic.
	Log(Entry{Source: "object:show", Action: "read"})

	_, err := Recent(Filter{})
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestHash(t *testing.T) {
	a := projectID("/a/.pubd")
	assert.Len(t, a, 16)
	assert.Equal(t, a, projectID("/a/.pubd"))
	assert.NotEqual(t, a, projectID("/b/.pubd"))
}
