// vacuum.go implements "pubd vacuum", which permanently removes
// soft-deleted objects. Without --force it asks for confirmation.

package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/duration"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/vacuum"
	"github.com/spf13/cobra"
)

func (e *Extension) newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Permanently delete soft-deleted objects",
		Long: `Permanently delete soft-deleted objects, including their tags.

This is irreversible. Use --force to skip confirmation.

Duration formats: 7d (days), 4w (weeks), 3m (months)`,
		Args: cobra.NoArgs,
		RunE: e.runVacuum,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Only purge deletions older than duration (e.g., 7d, 4w, 3m)")
	c.Flags().StringP(extension.FlagPath, "p", "", "Only purge specific path prefix")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be deleted")
	return c
}

func (e *Extension) runVacuum(c *cobra.Command, _ []string) error {
	olderThan, _ := c.Flags().GetString(extension.FlagOlderThan)
	prefix, _ := c.Flags().GetString(extension.FlagPath)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	opts := vacuum.Options{Prefix: prefix, DryRun: dryRun}
	if olderThan != "" {
		d, err := duration.Parse(olderThan)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("parse duration %q: %w", olderThan, err))
		}
		opts.OlderThan = &d
	}

	if !dryRun && !cmd.Force() {
		fmt.Fprint(cmd.Out(), "Permanently delete soft-deleted objects? This cannot be undone. [y/N] ")
		response, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := vacuum.Run(c.Context(), w, e.svc, opts)

	log.Event("core:vacuum", "vacuum").
		Author(cmd.Author()).
		Path(prefix).
		Detail("dry_run", dryRun).
		Detail("count", result.Deleted).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	return cmd.PrintJSON(result)
}
