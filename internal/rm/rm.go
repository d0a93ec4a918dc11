// Package rm provides soft-deletion of objects.
//
// Deletion is always soft. Objects are marked deleted but remain recoverable
// via restore, tags and publish marker included, until vacuum permanently
// removes them. A deleted object never appears in published listings.
package rm

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/pubd/internal/service"
)

// Options configures a delete operation.
type Options struct {
	Recursive bool // Delete all objects under path
}

// Result contains the outcome of a delete operation.
type Result struct {
	Path    string   `json:"path"`
	Key     string   `json:"key,omitempty"`     // Key deleted (single object)
	Deleted []string `json:"deleted,omitempty"` // Paths of deleted objects
}

// Run soft-deletes an object, or every object under a prefix when
// Recursive is set. A single path may also be given as a key.
func Run(ctx context.Context, w io.Writer, svc service.Service, path string, opts Options) (Result, error) {
	result := Result{Path: path}

	if !opts.Recursive {
		o, err := svc.Delete(ctx, path)
		if err != nil {
			return result, err
		}
		result.Path = o.Path
		result.Key = o.Key
		result.Deleted = []string{o.Path}
		fmt.Fprintf(w, "Deleted %s\n", o.Path)
		return result, nil
	}

	objs, err := svc.List(ctx, path, false, false)
	if err != nil {
		return result, err
	}
	for _, o := range objs {
		if _, err := svc.Delete(ctx, o.Path); err != nil {
			return result, err
		}
		result.Deleted = append(result.Deleted, o.Path)
		fmt.Fprintf(w, "Deleted %s\n", o.Path)
	}
	if len(result.Deleted) == 0 {
		fmt.Fprintf(w, "No objects found under %s\n", path)
	}
	return result, nil
}

// Restore recovers a soft-deleted object.
func Restore(ctx context.Context, w io.Writer, svc service.Service, path string) (Result, error) {
	result := Result{Path: path}

	o, err := svc.Restore(ctx, path)
	if err != nil {
		return result, err
	}
	result.Path = o.Path
	result.Key = o.Key
	state := ""
	if o.Published() {
		state = " (published)"
	}
	fmt.Fprintf(w, "Restored %s%s\n", o.Path, state)
	return result, nil
}
