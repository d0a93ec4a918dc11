package tag_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/jpl-au/pubd/internal/document"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/jpl-au/pubd/internal/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupService creates a temporary service and returns it along with a cleanup function.
func setupService(t *testing.T) (service.Service, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "pubd-tag-test-*")
	require.NoError(t, err, "creating temp dir")

	cwd, err := os.Getwd()
	require.NoError(t, err, "getting cwd")

	require.NoError(t, os.Chdir(tmpDir), "chdir to temp")

	require.NoError(t, document.Init(true, "", false, ""), "init store")

	svc, err := document.New("")
	require.NoError(t, err, "creating service")

	cleanup := func() {
		svc.Close()
		_ = os.Chdir(cwd)
		os.RemoveAll(tmpDir)
	}

	return svc, cleanup
}

func TestParse(t *testing.T) {
	got, err := tag.Parse([]string{"lang", "go"})
	require.NoError(t, err)
	assert.Equal(t, store.Tag{"lang", "go"}, got)

	got, err = tag.Parse([]string{`["public", "extra"]`})
	require.NoError(t, err)
	assert.Equal(t, store.Tag{"public", "extra"}, got)

	_, err = tag.Parse([]string{`["broken"`})
	assert.Error(t, err)
}

func TestParseFilter(t *testing.T) {
	got, err := tag.ParseFilter("lang,go")
	require.NoError(t, err)
	assert.Equal(t, store.Tag{"lang", "go"}, got)

	got, err = tag.ParseFilter(`["a,b"]`)
	require.NoError(t, err)
	assert.Equal(t, store.Tag{"a,b"}, got)
}

func TestAdd_ResolvesKeyToPath(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	o, _, err := svc.Write(ctx, "docs/readme", "content", "tester")
	require.NoError(t, err)

	var buf bytes.Buffer
	result, err := tag.Add(ctx, &buf, svc, o.Key, store.Tag{"important"}, "tester")
	require.NoError(t, err)

	assert.Equal(t, "docs/readme", result.Path, "Result.Path should be the resolved object path, not the key")
	assert.Equal(t, [][]string{{"important"}}, result.Tags)
	assert.Equal(t, 2, result.Revision)
	assert.Contains(t, buf.String(), `Added tag ["important"] to docs/readme`)
}

func TestAdd_RejectsMarker(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, _, err := svc.Write(ctx, "docs/readme", "content", "tester")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = tag.Add(ctx, &buf, svc, "docs/readme", store.Tag{"public"}, "tester")
	assert.ErrorIs(t, err, document.ErrMarkerTag)
	assert.Empty(t, buf.String())
}

func TestRemove(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	o, _, err := svc.Write(ctx, "docs/readme", "content", "tester")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = tag.Add(ctx, &buf, svc, "docs/readme", store.Tag{"a"}, "tester")
	require.NoError(t, err)
	_, err = tag.Add(ctx, &buf, svc, "docs/readme", store.Tag{"b"}, "tester")
	require.NoError(t, err)

	buf.Reset()
	result, err := tag.Remove(ctx, &buf, svc, o.Key, store.Tag{"a"}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "docs/readme", result.Path)
	assert.Equal(t, [][]string{{"b"}}, result.Tags)

	_, err = tag.Remove(ctx, &buf, svc, o.Key, store.Tag{"a"}, "tester")
	assert.ErrorIs(t, err, document.ErrTagNotFound)
}

func TestList(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	o, _, err := svc.Write(ctx, "docs/readme", "content", "tester")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = tag.Add(ctx, &buf, svc, "docs/readme", store.Tag{"lang", "go"}, "tester")
	require.NoError(t, err)
	_, err = svc.Publish(ctx, "docs/readme", "tester")
	require.NoError(t, err)

	buf.Reset()
	result, err := tag.List(ctx, &buf, svc, o.Key)
	require.NoError(t, err)
	assert.Equal(t, "docs/readme", result.Path)
	assert.Equal(t, [][]string{{"lang", "go"}, {"public"}}, result.Tags)
	assert.Equal(t, "[\"lang\", \"go\"]\n[\"public\"]\n", buf.String())
}

func TestList_Empty(t *testing.T) {
	svc, cleanup := setupService(t)
	defer cleanup()
	ctx := context.Background()

	_, _, err := svc.Write(ctx, "docs/bare", "content", "tester")
	require.NoError(t, err)

	var buf bytes.Buffer
	result, err := tag.List(ctx, &buf, svc, "docs/bare")
	require.NoError(t, err)
	assert.NotNil(t, result.Tags)
	assert.Empty(t, result.Tags)
	assert.Empty(t, buf.String())
}
