// Package cat prints object content, whole or as a line range.
package cat

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/pubd/internal/service"
	"github.com/jpl-au/pubd/internal/store"
)

// Options controls what part of an object is printed.
type Options struct {
	IncludeDeleted bool
	LineNumbers    bool
	StartLine      int // 1-based, 0 = first line
	EndLine        int // 1-based inclusive, 0 = last line
}

// Result carries the object that was printed.
type Result struct {
	Object *store.Object
}

// Run resolves pathOrKey and writes its content to w.
func Run(ctx context.Context, w io.Writer, svc service.Service, pathOrKey string, opts Options) (Result, error) {
	o, err := svc.Resolve(ctx, pathOrKey, opts.IncludeDeleted)
	if err != nil {
		return Result{}, err
	}
	if opts.StartLine == 0 && opts.EndLine == 0 && !opts.LineNumbers {
		_, err = io.WriteString(w, o.Content)
		return Result{Object: o}, err
	}
	return Result{Object: o}, writeLines(w, o.Content, opts)
}

// writeLines prints the selected lines, keeping their original terminators.
func writeLines(w io.Writer, content string, opts Options) error {
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	first, last := max(opts.StartLine, 1), len(lines)
	if opts.EndLine > 0 {
		last = min(opts.EndLine, last)
	}
	width := max(len(fmt.Sprint(last)), 6)

	for n := first; n <= last; n++ {
		var err error
		if opts.LineNumbers {
			_, err = fmt.Fprintf(w, "%*d\t%s", width, n, lines[n-1])
		} else {
			_, err = io.WriteString(w, lines[n-1])
		}
		if err != nil {
			return err
		}
	}
	return nil
}
