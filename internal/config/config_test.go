package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var c Config
	assert.Equal(t, DefaultMaxPath, c.MaxPath())
	assert.Equal(t, int64(DefaultMaxContent), c.MaxContent())
	assert.Equal(t, DefaultMaxTags, c.MaxTags())
	assert.Equal(t, DefaultHTTPAddr, c.HTTPAddr())
	assert.False(t, c.IsSet("limits.max_tags"))
}

func TestSetGet(t *testing.T) {
	var c Config
	require.NoError(t, c.Set("author.name", "alice"))
	require.NoError(t, c.Set("limits.max_tags", "8"))
	require.NoError(t, c.Set("http.addr", ":9000"))

	v, err := c.Get("limits.max_tags")
	require.NoError(t, err)
	assert.Equal(t, "8", v)
	assert.True(t, c.IsSet("limits.max_tags"))
	assert.Equal(t, ":9000", c.All()["http.addr"])
	assert.Equal(t, "alice", c.Author.Name)
}

func TestSetInvalid(t *testing.T) {
	var c Config
	assert.ErrorIs(t, c.Set("limits.max_tags", "0"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("limits.max_path", "abc"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("http.addr", "nope"), ErrInvalidValue)
	assert.ErrorIs(t, c.Set("sync.files", "true"), ErrUnknownKey)

	_, err := c.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestValidate(t *testing.T) {
	n := 0
	c := Config{Limits: Limits{MaxTags: &n}}
	assert.ErrorIs(t, c.Validate(), ErrInvalidValue)
}

func TestLoadSaveLocal(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, c.Set("limits.max_tags", "3"))
	require.NoError(t, c.Save())
	assert.FileExists(t, filepath.Join(".pubd", "config.yaml"))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, loaded.Scope())
	assert.Equal(t, 3, loaded.MaxTags())
}

func TestLoadMalformed(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(".pubd", 0755))
	require.NoError(t, os.WriteFile(LocalPath(), []byte("limits: [oops"), 0644))

	_, err := Load()
	assert.ErrorContains(t, err, "malformed config file")
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Equal(t, []string{
		"author.email", "author.name", "http.addr",
		"limits.max_content", "limits.max_path", "limits.max_tags",
	}, keys)

	var c Config
	assert.Len(t, c.All(), len(keys))
	require.NoError(t, c.Set("limits.max_content", "2048"))
	assert.Equal(t, int64(2048), c.MaxContent())
	assert.False(t, c.IsSet("nope"))
}
