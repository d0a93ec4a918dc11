// rm.go implements "pubd rm". Deletion is soft: tags and the publish
// marker survive until vacuum.

package object

import (
	"fmt"
	"io"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRmCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "rm <path|key>",
		Short: "Delete an object",
		Long:  `Soft-delete an object (recoverable via restore). A deleted object is not listed as published.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRm,
	}
	c.Flags().BoolP(extension.FlagRecursive, "r", false, "Delete all objects under path")
	return c
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	recursive, _ := c.Flags().GetBool(extension.FlagRecursive)
	p := args[0]

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	l := log.Event("object:rm", "delete").
		Author(cmd.Author()).
		Path(p).
		Detail("recursive", recursive)

	result, err := rm.Run(c.Context(), w, e.svc, p, rm.Options{Recursive: recursive})
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(fmt.Errorf("rm %q: %w", p, err))
	}
	l.Resolved(result.Path).Detail("count", len(result.Deleted)).Write(nil)

	return cmd.PrintJSON(result)
}
