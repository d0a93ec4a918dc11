package cat_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/jpl-au/pubd/internal/cat"
	"github.com/jpl-au/pubd/internal/document"
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
	return svc
}

func TestRun(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	o, _, err := svc.Write(ctx, "docs/lines", "one\ntwo\nthree\n", "a")
	require.NoError(t, err)

	tests := []struct {
		name string
		opts cat.Options
		want string
	}{
		{"full", cat.Options{}, "one\ntwo\nthree\n"},
		{"range", cat.Options{StartLine: 2, EndLine: 2}, "two\n"},
		{"from", cat.Options{StartLine: 2}, "two\nthree\n"},
		{"numbers", cat.Options{LineNumbers: true, EndLine: 1}, "     1\tone\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			res, err := cat.Run(ctx, &buf, svc, o.Key, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, "docs/lines", res.Object.Path)
		})
	}
}

func TestRun_Deleted(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	_, _, err := svc.Write(ctx, "docs/gone", "bye", "a")
	require.NoError(t, err)
	_, err = svc.Delete(ctx, "docs/gone")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = cat.Run(ctx, &buf, svc, "docs/gone", cat.Options{})
	assert.Error(t, err)

	_, err = cat.Run(ctx, &buf, svc, "docs/gone", cat.Options{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, "bye", buf.String())
}

func TestRun_NoTrailingNewline(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()
	_, _, err := svc.Write(ctx, "docs/short", "one\ntwo", "a")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = cat.Run(ctx, &buf, svc, "docs/short", cat.Options{StartLine: 2, EndLine: 9})
	require.NoError(t, err)
	assert.Equal(t, "two", buf.String())

	buf.Reset()
	_, err = cat.Run(ctx, &buf, svc, "docs/short", cat.Options{StartLine: 5})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
