// ls.go implements "pubd ls". -t shows a tree, -l adds revision, publish
// state, size, tag count and author.

package object

import (
	"fmt"
	"io"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/ls"
	"github.com/jpl-au/pubd/internal/tag"
	"github.com/spf13/cobra"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [prefix]",
		Short: "List objects",
		Long: `List objects, optionally filtered by path prefix.

  pubd ls --published
  pubd ls docs -l
  pubd ls --tag '["lang","go"]'`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagAll, "A", false, "Include deleted objects")
	c.Flags().BoolP(extension.FlagDeleted, "D", false, "Show only deleted objects")
	c.Flags().BoolP(extension.FlagPublished, "P", false, "Show only published objects")
	c.Flags().BoolP(extension.FlagTree, "t", false, "Display as tree")
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with metadata")
	c.Flags().String(extension.FlagTag, "", `Filter by tag-value (JSON array or comma separated, e.g. lang,go)`)
	c.Flags().StringP(extension.FlagSort, "s", "", "Sort by: name, time")
	c.Flags().BoolP(extension.FlagReverse, "R", false, "Reverse sort order")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	ctx := c.Context()
	opts := ls.Options{}
	if len(args) > 0 {
		opts.Prefix = args[0]
	}
	opts.IncludeAll, _ = c.Flags().GetBool(extension.FlagAll)
	opts.DeletedOnly, _ = c.Flags().GetBool(extension.FlagDeleted)
	opts.Published, _ = c.Flags().GetBool(extension.FlagPublished)
	opts.Tree, _ = c.Flags().GetBool(extension.FlagTree)
	opts.Long, _ = c.Flags().GetBool(extension.FlagLong)
	opts.Reverse, _ = c.Flags().GetBool(extension.FlagReverse)

	if opts.Published && (opts.IncludeAll || opts.DeletedOnly) {
		return cmd.PrintJSONError(fmt.Errorf("--published cannot be combined with --all or --deleted"))
	}

	if raw, _ := c.Flags().GetString(extension.FlagTag); raw != "" {
		t, err := tag.ParseFilter(raw)
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		opts.Tag = t
	}

	sortBy, _ := c.Flags().GetString(extension.FlagSort)
	if sortBy != "" && sortBy != "name" && sortBy != "time" {
		return cmd.PrintJSONError(fmt.Errorf("invalid sort field %q: must be 'name' or 'time'", sortBy))
	}
	opts.Sort = ls.SortField(sortBy)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := ls.Run(ctx, w, e.svc, opts)

	log.Event("object:ls", "list").
		Author(cmd.Author()).
		Path(opts.Prefix).
		Detail("published", opts.Published).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls %q: %w", opts.Prefix, err))
	}
	return cmd.PrintJSON(result.ToJSON())
}
