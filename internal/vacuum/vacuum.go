// Package vacuum purges soft-deleted objects for good. Until an object is
// vacuumed it can be restored with its tags, publish marker included.
package vacuum

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jpl-au/pubd/internal/progress"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/jpl-au/pubd/internal/store"
)

// Options selects what to purge.
type Options struct {
	OlderThan *time.Duration // keep deletions younger than this
	Prefix    string
	DryRun    bool
}

// Result lists the purged (or, in a dry run, purgeable) objects.
type Result struct {
	Deleted int      `json:"deleted"`
	Paths   []string `json:"paths,omitempty"`
}

// Run purges deleted objects matching opts, or reports them when DryRun is set.
func Run(ctx context.Context, w io.Writer, svc service.Service, opts Options) (Result, error) {
	if opts.DryRun {
		due, err := candidates(ctx, svc, opts)
		if err != nil {
			return Result{}, err
		}
		res := Result{Deleted: len(due)}
		for _, o := range due {
			res.Paths = append(res.Paths, o.Path)
			fmt.Fprintf(w, "Would delete: %s (deleted %s)\n",
				o.Path, time.Unix(*o.DeletedAt, 0).Format("2006-01-02 15:04"))
		}
		summarise(w, res.Deleted, "\nWould delete %d object(s)\n")
		return res, nil
	}

	spin := progress.NewSpinner("Vacuuming")
	spin.Start()
	n, err := svc.Vacuum(ctx, opts.OlderThan, opts.Prefix)
	spin.Stop()
	if err != nil {
		return Result{}, err
	}

	summarise(w, int(n), "Vacuumed %d object(s)\n")
	return Result{Deleted: int(n)}, nil
}

// candidates returns deleted objects old enough to purge.
func candidates(ctx context.Context, svc service.Service, opts Options) ([]*store.Object, error) {
	objs, err := svc.List(ctx, opts.Prefix, false, true)
	if err != nil {
		return nil, err
	}
	var cutoff int64 = -1
	if opts.OlderThan != nil {
		cutoff = time.Now().Add(-*opts.OlderThan).Unix()
	}

	due := objs[:0]
	for _, o := range objs {
		if o.DeletedAt == nil || (cutoff >= 0 && *o.DeletedAt >= cutoff) {
			continue
		}
		due = append(due, o)
	}
	return due, nil
}

func summarise(w io.Writer, n int, msg string) {
	if n == 0 {
		fmt.Fprintln(w, "No objects to vacuum")
		return
	}
	fmt.Fprintf(w, msg, n)
}
