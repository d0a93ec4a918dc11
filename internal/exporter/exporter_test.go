package exporter_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/pubd/internal/document"
	"github.com/jpl-au/pubd/internal/exporter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *document.Service {
	t.Helper()
	t.Chdir(t.TempDir())
	require.NoError(t, document.Init(true, "", false, ""))
	svc, err := document.New("")
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	ctx := context.Background()
	for _, p := range []string{"blog/a", "blog/drafts/b", "notes/n"} {
		_, _, err := svc.Write(ctx, p, "# "+p, "alice")
		require.NoError(t, err)
	}
	_, err = svc.Publish(ctx, "blog/a", "alice")
	require.NoError(t, err)
	return svc
}

func TestExportAll(t *testing.T) {
	svc := setup(t)
	dst := t.TempDir()

	res, err := exporter.Run(context.Background(), io.Discard, svc, dst, exporter.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Exported)

	data, err := os.ReadFile(filepath.Join(dst, "blog", "drafts", "b.md"))
	require.NoError(t, err)
	assert.Equal(t, "# blog/drafts/b", string(data))
	assert.FileExists(t, filepath.Join(dst, "notes", "n.md"))
}

func TestExportPublishedWithPrefix(t *testing.T) {
	svc := setup(t)
	dst := t.TempDir()

	res, err := exporter.Run(context.Background(), io.Discard, svc, dst, exporter.Options{
		Prefix:    "blog/",
		Published: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Exported)
	assert.Equal(t, []string{filepath.Join(dst, "a.md")}, res.Paths)
	assert.NoFileExists(t, filepath.Join(dst, "drafts", "b.md"))
}

func TestExportRefusesOverwrite(t *testing.T) {
	svc := setup(t)
	dst := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dst, "blog"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dst, "blog", "a.md"), []byte("old"), 0644))

	opts := exporter.Options{Published: true}
	_, err := exporter.Run(context.Background(), io.Discard, svc, dst, opts)
	assert.ErrorContains(t, err, "file exists")

	opts.Force = true
	_, err = exporter.Run(context.Background(), io.Discard, svc, dst, opts)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dst, "blog", "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "# blog/a", string(data))
}

func TestExportNothing(t *testing.T) {
	svc := setup(t)
	_, err := exporter.Run(context.Background(), io.Discard, svc, t.TempDir(), exporter.Options{Prefix: "missing/"})
	assert.ErrorIs(t, err, exporter.ErrNothingToExport)
}
