// Package exporter writes objects to the filesystem as .md files, one per
// object, mirroring their paths. With Published set only published objects
// are written, which yields the public view of a store.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/pubd/internal/progress"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/jpl-au/pubd/internal/store"
)

// ErrNothingToExport is returned when no object matches.
var ErrNothingToExport = errors.New("no objects to export")

// Options configures an export operation.
type Options struct {
	Prefix    string // Only objects under this path prefix
	Published bool   // Only published objects
	Force     bool   // Overwrite existing files
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int      `json:"exported"`
	Paths    []string `json:"paths"` // Filesystem paths written
}

// Run writes matching objects below dst. Writes go through os.Root so an
// object path can never escape dst.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	var result Result

	var objs []*store.Object
	var err error
	if opts.Published {
		objs, err = svc.ListPublished(ctx, opts.Prefix)
	} else {
		objs, err = svc.List(ctx, opts.Prefix, false, false)
	}
	if err != nil {
		return result, err
	}
	if len(objs) == 0 {
		return result, ErrNothingToExport
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return result, fmt.Errorf("creating destination directory: %w", err)
	}
	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination root: %w", err)
	}
	defer root.Close()

	spin := progress.NewSpinner("Exporting")
	spin.Start()
	defer spin.Stop()

	for _, o := range objs {
		name := relativePath(o.Path, opts.Prefix) + ".md"
		if err := writeFileInRoot(root, name, o.Content, opts.Force); err != nil {
			return result, err
		}
		spin.Tick()

		out := filepath.Join(dst, name)
		result.Paths = append(result.Paths, out)
		result.Exported++
		fmt.Fprintf(w, "Exported: %s -> %s\n", o.Path, out)
	}
	return result, nil
}

// relativePath strips prefix from an object path.
func relativePath(p, prefix string) string {
	if prefix == "" {
		return p
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if rel := strings.TrimPrefix(p, prefix+"/"); rel != p {
		return rel
	}
	return strings.TrimPrefix(p, prefix)
}

func writeFileInRoot(root *os.Root, name, content string, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		}
	}

	if dir := filepath.Dir(name); dir != "." && dir != "" {
		if err := mkdirAllInRoot(root, dir); err != nil {
			return err
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

func mkdirAllInRoot(root *os.Root, path string) error {
	parts := strings.Split(filepath.Clean(path), string(filepath.Separator))
	for i := range parts {
		dir := filepath.Join(parts[:i+1]...)
		if err := root.Mkdir(dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	return nil
}
