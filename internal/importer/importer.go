// Package importer loads .md files into pubd as objects. Each file becomes
// the object at its relative path without the extension. With Publish set,
// every imported object is also published.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/pubd/internal/progress"
	"github.com/jpl-au/pubd/internal/publish"
	"github.com/jpl-au/pubd/internal/service"
)

// Options configures an import operation.
type Options struct {
	Prefix  string // Target path prefix
	Hidden  bool   // Include hidden files and directories
	DryRun  bool   // Report without writing
	Publish bool   // Publish each imported object
	Author  string // Author for imported objects
}

// Result contains the outcome of an import operation.
type Result struct {
	Imported         int      `json:"imported"`
	Published        int      `json:"published"`
	AlreadyPublished int      `json:"already_published"`
	Paths            []string `json:"paths"` // Object paths imported, or that would be
}

// Run imports src, a single .md file or a directory scanned recursively.
// Reads go through os.Root so symlinks cannot escape src.
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	var result Result

	info, err := os.Stat(src)
	if err != nil {
		return result, err
	}

	if !info.IsDir() {
		if !isMarkdown(src) {
			return result, fmt.Errorf("%s: not a .md file", src)
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", src, err)
		}
		err = importOne(ctx, w, svc, src, objectPath(filepath.Base(src), opts.Prefix), string(data), opts, &result)
		return result, err
	}

	root, err := os.OpenRoot(src)
	if err != nil {
		return result, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	files, err := scanRoot(root, "", opts.Hidden)
	if err != nil {
		return result, fmt.Errorf("scanning %s: %w", src, err)
	}

	spin := progress.NewSpinner("Importing")
	spin.Start()
	defer spin.Stop()

	for _, rel := range files {
		var content string
		if !opts.DryRun {
			content, err = readFileInRoot(root, rel)
			if err != nil {
				return result, fmt.Errorf("reading %s: %w", rel, err)
			}
		}
		if err := importOne(ctx, w, svc, filepath.Join(src, rel), objectPath(rel, opts.Prefix), content, opts, &result); err != nil {
			return result, err
		}
		spin.Tick()
	}
	return result, nil
}

func importOne(ctx context.Context, w io.Writer, svc service.Service, file, p, content string, opts Options, result *Result) error {
	result.Paths = append(result.Paths, p)
	if opts.DryRun {
		fmt.Fprintf(w, "Would import: %s -> %s\n", file, p)
		return nil
	}

	if _, _, err := svc.Write(ctx, p, content, opts.Author); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	result.Imported++

	if opts.Publish {
		_, err := svc.Publish(ctx, p, opts.Author)
		switch {
		case err == nil:
			result.Published++
		case errors.Is(err, publish.ErrConflict):
			result.AlreadyPublished++
		default:
			return fmt.Errorf("publishing %s: %w", p, err)
		}
	}

	fmt.Fprintf(w, "Imported: %s -> %s\n", file, p)
	return nil
}

// scanRoot returns the relative paths of .md files below dir, in
// directory order.
func scanRoot(root *os.Root, dir string, includeHidden bool) ([]string, error) {
	path := dir
	if path == "" {
		path = "."
	}

	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if dir != "" {
			rel = filepath.Join(dir, name)
		}

		switch {
		case entry.IsDir():
			sub, err := scanRoot(root, rel, includeHidden)
			if err != nil {
				return nil, err
			}
			files = append(files, sub...)
		case isMarkdown(name):
			files = append(files, rel)
		}
	}
	return files, nil
}

func readFileInRoot(root *os.Root, name string) (string, error) {
	f, err := root.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}

// objectPath maps a relative file path to an object path.
func objectPath(rel, prefix string) string {
	p := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	if prefix != "" {
		p = strings.TrimSuffix(prefix, "/") + "/" + p
	}
	return p
}
