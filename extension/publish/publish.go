// Package publish provides the publish extension for pubd.
// It registers commands: publish, unpublish, status; and the pubd_status
// MCP tool.
//
// Publish and unpublish report the service's failure codes unchanged: 409
// when the object is already in the requested state, 400 when the save
// failed.
package publish

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/log"
	pub "github.com/jpl-au/pubd/internal/publish"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the publish extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "publish".
func (e *Extension) Name() string { return "publish" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns publish, unpublish and status.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newToggleCmd("publish", "Publish an object", `Add the ["public"] marker to an object.

Fails with 409 "Object already published" if the marker is present.`),
		e.newToggleCmd("unpublish", "Unpublish an object", `Remove every ["public"] marker from an object.

Fails with 409 "Object already unpublished" if there is none.`),
		e.newStatusCmd(),
	}
}

// Result is printed by publish, unpublish and status in JSON mode.
type Result struct {
	Path      string `json:"path"`
	Key       string `json:"key"`
	Revision  int    `json:"revision"`
	Published bool   `json:"published"`
}

func resultOf(o *store.Object) Result {
	return Result{Path: o.Path, Key: o.Key, Revision: o.Revision, Published: o.Published()}
}

type toggleFunc func(ctx context.Context, pathOrKey, author string) (*store.Object, error)

func (e *Extension) newToggleCmd(op, short, long string) *cobra.Command {
	return &cobra.Command{
		Use:   op + " <path|key>",
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			fn := e.svc.Publish
			if op == "unpublish" {
				fn = e.svc.Unpublish
			}
			return run(c.Context(), cmd.Out(), op, args[0], fn)
		},
	}
}

// run performs one toggle and reports it. Publish failures keep their
// status code in the error text.
func run(ctx context.Context, w io.Writer, op, p string, fn toggleFunc) error {
	l := log.Event("publish:"+op, op).Author(cmd.Author()).Path(p)

	o, err := fn(ctx, p, cmd.Author())
	if err != nil {
		l.Write(err)
		if code := pub.StatusCode(err); code != 0 {
			return cmd.PrintJSONError(fmt.Errorf("%s %q: %d %w", op, p, code, err))
		}
		return cmd.PrintJSONError(fmt.Errorf("%s %q: %w", op, p, err))
	}
	l.Resolved(o.Path).ResultRevision(o.Revision).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(resultOf(o))
	}
	verb := "Published"
	if op == "unpublish" {
		verb = "Unpublished"
	}
	fmt.Fprintf(w, "%s %s (rev %d)\n", verb, o.Path, o.Revision)
	return nil
}
