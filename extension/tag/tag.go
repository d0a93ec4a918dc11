// Package tag provides the tag extension for pubd.
// It registers commands: tag (with subcommands add, rm, ls).
//
// These commands manage raw tag-values. The publish marker is owned by the
// publish extension and is refused here.
package tag

import (
	"fmt"
	"io"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/jpl-au/pubd/internal/tag"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
)

// Name returns "tag".
func (e *Extension) Name() string { return "tag" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the tag command with its subcommands (add, rm, ls).
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newTagCmd(),
	}
}

// MCPTools returns nil; tag tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// HandleEvent notes in the audit log that a deleted object's tag-values,
// publish marker included, are kept until vacuum.
func (e *Extension) HandleEvent(_ extension.Context, evt extension.Event) error {
	if ev, ok := evt.(extension.ObjectDeleteEvent); ok {
		log.Event("tag:observed_delete", "event").
			Path(ev.Path).
			Detail("reason", "tags kept until vacuum").
			Write(nil)
	}
	return nil
}

func (e *Extension) newTagCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "tag",
		Short: "Manage object tag-values",
		Long: `Add, remove, and list tag-values. A tag-value is a sequence of strings:

  pubd tag add docs/intro lang go        # ["lang", "go"]
  pubd tag add docs/intro '["a", "b c"]' # JSON form

Use pubd publish / unpublish for ["public"].`,
	}
	c.AddCommand(e.newTagAddCmd())
	c.AddCommand(e.newTagRmCmd())
	c.AddCommand(e.newTagLsCmd())
	return c
}

func (e *Extension) newTagAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path|key> <element>...",
		Short: "Add a tag-value to an object",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runTagAdd,
	}
}

func (e *Extension) newTagRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path|key> <element>...",
		Short: "Remove every equal tag-value from an object",
		Args:  cobra.MinimumNArgs(2),
		RunE:  e.runTagRm,
	}
}

func (e *Extension) newTagLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <path|key>",
		Short: "List the tag-values of an object",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runTagLs,
	}
}

func (e *Extension) runTagAdd(c *cobra.Command, args []string) error {
	path := args[0]
	t, err := tag.Parse(args[1:])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	l := log.Event("tag:add", "tag").
		Author(cmd.Author()).
		Path(path).
		Detail("tag", []string(t))

	result, err := tag.Add(c.Context(), w, e.svc, path, t, cmd.Author())
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag add %q %s: %w", path, t, err))
	}
	l.Resolved(result.Path).ResultRevision(result.Revision).Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runTagRm(c *cobra.Command, args []string) error {
	path := args[0]
	t, err := tag.Parse(args[1:])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	l := log.Event("tag:rm", "untag").
		Author(cmd.Author()).
		Path(path).
		Detail("tag", []string(t))

	result, err := tag.Remove(c.Context(), w, e.svc, path, t, cmd.Author())
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag rm %q %s: %w", path, t, err))
	}
	l.Resolved(result.Path).ResultRevision(result.Revision).Write(nil)

	return cmd.PrintJSON(result)
}

func (e *Extension) runTagLs(c *cobra.Command, args []string) error {
	path := args[0]

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	l := log.Event("tag:ls", "list_tags").
		Author(cmd.Author()).
		Path(path)

	result, err := tag.List(c.Context(), w, e.svc, path)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("tag ls %q: %w", path, err))
	}
	l.Resolved(result.Path).Detail("count", len(result.Tags)).Write(nil)

	return cmd.PrintJSON(result)
}
