// log.go implements "pubd log", which prints recent audit entries. Use
// --source publish:conflict to see rejected publish and unpublish calls.

package core

import (
	"fmt"
	"time"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/repo"
	"github.com/spf13/cobra"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show recent audit log entries",
		Long: `Show recent audit log entries, newest first.

  pubd log --source publish:conflict
  pubd log --path docs/intro --project`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().String(extension.FlagSource, "", "Only entries from this source")
	c.Flags().StringP(extension.FlagPath, "p", "", "Only entries for this path")
	c.Flags().Bool(extension.FlagProject, false, "Only entries from the current project")
	c.Flags().IntP(extension.FlagLimit, "n", 20, "Maximum entries")
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	var f log.Filter
	f.Source, _ = c.Flags().GetString(extension.FlagSource)
	f.Path, _ = c.Flags().GetString(extension.FlagPath)
	f.Project, _ = c.Flags().GetBool(extension.FlagProject)
	f.Limit, _ = c.Flags().GetInt(extension.FlagLimit)

	if f.Project {
		dir, err := repo.DiscoverDir()
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("log: %w", err))
		}
		log.SetProject(dir)
	}

	entries, err := log.Recent(f)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("log: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(entries)
	}

	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "error: " + e.Error
		}
		fmt.Fprintf(cmd.Out(), "%s  %-18s %-10s %s  %s\n",
			time.Unix(e.Start, 0).Format("2006-01-02 15:04:05"), e.Source, e.Action, e.Path, status)
	}
	return nil
}
