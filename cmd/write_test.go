package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Run("write and read", func(t *testing.T) {
		env := newTestEnv(t)
		content := "# Hello World\n\nThis is a test object."

		out := env.runStdin(content, "write", "docs/readme")
		env.contains(out, "Created docs/readme (rev 1)")

		env.equals(env.run("cat", "docs/readme"), content)
	})

	t.Run("content argument", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("docs/readme", "inline")
		env.equals(env.run("cat", "docs/readme"), "inline")
	})

	t.Run("content from file", func(t *testing.T) {
		env := newTestEnv(t)
		src := filepath.Join(t.TempDir(), "in.md")
		require.NoError(t, os.WriteFile(src, []byte("from file"), 0644))

		env.run("write", "docs/readme", "-f", src)
		env.equals(env.run("cat", "docs/readme"), "from file")
	})

	t.Run("rewrite bumps revision", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("docs/readme", "one")
		out := env.run("write", "docs/readme", "two")
		env.contains(out, "Updated docs/readme (rev 2)")
	})

	t.Run("rewrite keeps published state", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("docs/readme", "one")
		env.run("publish", "docs/readme")
		env.write("docs/readme", "two")

		env.contains(env.run("status", "docs/readme"), "docs/readme: published")
	})

	t.Run("author recorded", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("write", "docs/readme", "content", "-a", "alice")

		var obj struct {
			Author string `json:"author"`
		}
		env.runJSON(&obj, "cat", "docs/readme")
		assert.Equal(t, "alice", obj.Author)
	})

	t.Run("diff", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("docs/readme", "aaa\n")
		out := env.run("write", "docs/readme", "zzz\n", "--diff")
		env.contains(out, "- aaa")
		env.contains(out, "+ zzz")
	})

	t.Run("invalid path", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.runErr("write", "../escape", "content")
		assert.Error(t, err)
	})

	t.Run("JSON output", func(t *testing.T) {
		env := newTestEnv(t)
		var res struct {
			Path     string `json:"path"`
			Key      string `json:"key"`
			Revision int    `json:"revision"`
			Created  bool   `json:"created"`
		}
		env.runJSON(&res, "write", "docs/json", "content")
		assert.Equal(t, "docs/json", res.Path)
		assert.Len(t, res.Key, 8)
		assert.Equal(t, 1, res.Revision)
		assert.True(t, res.Created)
	})
}

func TestCat(t *testing.T) {
	t.Run("by key", func(t *testing.T) {
		env := newTestEnv(t)
		var res struct {
			Key string `json:"key"`
		}
		env.runJSON(&res, "write", "docs/readme", "by key")
		env.equals(env.run("cat", res.Key), "by key")
	})

	t.Run("line range", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("docs/lines", "one\ntwo\nthree\nfour\n")
		env.equals(env.run("cat", "docs/lines", "-l", "2:3"), "two\nthree")
	})

	t.Run("invalid line range", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("docs/lines", "one\n")
		_, err := env.runErr("cat", "docs/lines", "-l", "3:1")
		assert.Error(t, err)
	})

	t.Run("missing object", func(t *testing.T) {
		env := newTestEnv(t)
		out, err := env.runErr("cat", "docs/missing")
		require.Error(t, err)
		env.contains(out, "not found")
	})

	t.Run("show alias", func(t *testing.T) {
		env := newTestEnv(t)
		env.write("docs/readme", "alias")
		env.equals(env.run("show", "docs/readme"), "alias")
	})
}
