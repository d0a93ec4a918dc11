package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBFileName(t *testing.T) {
	assert.Equal(t, "pubd.db", DBFileName(""))
	assert.Equal(t, "pubd-docs.db", DBFileName("docs"))
	assert.Equal(t, "custom.db", DBFileName("custom.db"))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Init(false, "", false, dir))
	assert.FileExists(t, filepath.Join(dir, Dir, "pubd.db"))
	assert.FileExists(t, filepath.Join(dir, Dir, ".gitignore"))

	err := Init(false, "", false, dir)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, Init(true, "", false, dir))
}

func TestInitLocal(t *testing.T) {
	dir := t.TempDir()
	pubdDir := filepath.Join(dir, Dir)

	require.NoError(t, Init(false, "scratch", true, dir))

	ignored, err := IsIgnored("scratch", pubdDir)
	require.NoError(t, err)
	assert.True(t, ignored)

	require.NoError(t, UnignoreDB("scratch", pubdDir))
	ignored, err = IsIgnored("scratch", pubdDir)
	require.NoError(t, err)
	assert.False(t, ignored)
}

func TestListDBs(t *testing.T) {
	dir := t.TempDir()
	pubdDir := filepath.Join(dir, Dir)

	require.NoError(t, Init(false, "", false, dir))
	require.NoError(t, Init(false, "notes", true, dir))
	require.NoError(t, os.WriteFile(filepath.Join(pubdDir, "other.db"), nil, 0644))

	dbs, err := ListDBs(pubdDir)
	require.NoError(t, err)
	require.Len(t, dbs, 2)

	byFile := map[string]DBInfo{}
	for _, d := range dbs {
		byFile[d.File] = d
	}
	assert.False(t, byFile["pubd.db"].Local)
	assert.True(t, byFile["pubd-notes.db"].Local)
	assert.Equal(t, "notes", byFile["pubd-notes.db"].Name)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(false, "", false, dir))

	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	p, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, "pubd.db", filepath.Base(p))

	_, err = Discover("missing")
	assert.ErrorIs(t, err, ErrNotInitialised)
}

func TestGitignoreKeepsOtherLines(t *testing.T) {
	dir := t.TempDir()
	pubdDir := filepath.Join(dir, Dir)
	require.NoError(t, Init(false, "", false, dir))

	gi := filepath.Join(pubdDir, ".gitignore")
	f, err := os.OpenFile(gi, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("exports/\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, IgnoreDB("a", pubdDir))
	require.NoError(t, IgnoreDB("a", pubdDir))
	require.NoError(t, IgnoreDB("b", pubdDir))

	data, err := os.ReadFile(gi)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "pubd-a.db"))
	assert.Equal(t, 1, strings.Count(string(data), localDBHeader))

	require.NoError(t, UnignoreDB("a", pubdDir))
	data, err = os.ReadFile(gi)
	require.NoError(t, err)
	assert.Contains(t, string(data), localDBHeader)

	require.NoError(t, UnignoreDB("b", pubdDir))
	data, err = os.ReadFile(gi)
	require.NoError(t, err)
	assert.NotContains(t, string(data), localDBHeader)
	assert.Contains(t, string(data), "exports/")
	assert.Contains(t, string(data), "config.yaml")
}

func TestDBName(t *testing.T) {
	for _, file := range []string{"pubd.db", "pubd-docs.db", "pubd-a-b.db"} {
		name, ok := dbName(file)
		require.True(t, ok, file)
		assert.Equal(t, file, DBFileName(name))
	}
	for _, file := range []string{"other.db", "pubd-x.db-wal", "pubd.txt"} {
		_, ok := dbName(file)
		assert.False(t, ok, file)
	}
}
