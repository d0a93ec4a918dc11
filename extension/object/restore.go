// restore.go implements "pubd restore". A restored object keeps its tags,
// so an object deleted while published comes back published.

package object

import (
	"fmt"
	"io"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/rm"
	"github.com/spf13/cobra"
)

func (e *Extension) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <path>",
		Short: "Restore a deleted object",
		Long:  `Restore a soft-deleted object by path. Deleted objects have no usable key.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runRestore,
	}
}

func (e *Extension) runRestore(c *cobra.Command, args []string) error {
	p := args[0]

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	result, err := rm.Restore(c.Context(), w, e.svc, p)

	log.Event("object:restore", "restore").Author(cmd.Author()).Path(p).Resolved(result.Path).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("restore %q: %w", p, err))
	}
	return cmd.PrintJSON(result)
}
