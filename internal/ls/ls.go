// Package ls provides object listing with sorting and filtering.
//
// Listing always loads full objects; SIZE in long format is measured from
// the loaded content.
package ls

import (
	"context"
	"io"
	"sort"

	"github.com/jpl-au/pubd/internal/format"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/jpl-au/pubd/internal/store"
)

// SortField specifies how to sort results.
type SortField string

const (
	SortNone SortField = ""
	SortName SortField = "name"
	SortTime SortField = "time" // newest first by default
)

// Options configures a list operation.
type Options struct {
	Prefix      string    // Filter by path prefix
	IncludeAll  bool      // Include deleted objects
	DeletedOnly bool      // Show only deleted objects
	Published   bool      // Show only published objects
	Tree        bool      // Display as tree
	Long        bool      // Long format with metadata
	Tag         store.Tag // Filter by exact tag-value
	Sort        SortField // Sort field (name, time)
	Reverse     bool      // Reverse sort order
}

// Result contains the outcome of a list operation.
type Result struct {
	Objects []*store.Object
}

// Count returns the number of objects in the result.
func (r Result) Count() int {
	return len(r.Objects)
}

// ToJSON converts the result to JSON-serializable format.
func (r Result) ToJSON() []store.ObjectJSON {
	out := make([]store.ObjectJSON, len(r.Objects))
	for i, o := range r.Objects {
		out[i] = o.ToJSON(false)
	}
	return out
}

// Run lists objects and writes formatted output to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	var result Result

	var objs []*store.Object
	var err error
	if opts.Published {
		objs, err = svc.ListPublished(ctx, opts.Prefix)
	} else {
		objs, err = svc.List(ctx, opts.Prefix, opts.IncludeAll, opts.DeletedOnly)
	}
	if err != nil {
		return result, err
	}

	if len(opts.Tag) > 0 {
		filtered := objs[:0]
		for _, o := range objs {
			if o.Tags().Contains(opts.Tag) {
				filtered = append(filtered, o)
			}
		}
		objs = filtered
	}

	// Time sorting shows the most recently saved first. Path breaks ties so
	// ordering is stable across runs.
	switch opts.Sort {
	case SortName:
		sort.Slice(objs, func(i, j int) bool {
			if opts.Reverse {
				return objs[i].Path > objs[j].Path
			}
			return objs[i].Path < objs[j].Path
		})
	case SortTime:
		sort.Slice(objs, func(i, j int) bool {
			if objs[i].UpdatedAt == objs[j].UpdatedAt {
				if opts.Reverse {
					return objs[i].Path > objs[j].Path
				}
				return objs[i].Path < objs[j].Path
			}
			if opts.Reverse {
				return objs[i].UpdatedAt < objs[j].UpdatedAt
			}
			return objs[i].UpdatedAt > objs[j].UpdatedAt
		})
	}

	result.Objects = objs

	switch {
	case opts.Long:
		err = format.Long(w, objs)
	case opts.Tree:
		err = format.Tree(w, objs)
	default:
		err = format.List(w, objs)
	}
	return result, err
}
