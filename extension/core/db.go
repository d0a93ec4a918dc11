// db.go implements "pubd db": list the databases in .pubd and switch each
// between shared (committed) and local (gitignored). No database is opened.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/repo"
	"github.com/spf13/cobra"
)

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage databases",
		Long: `List databases or change their local/shared status.

  pubd db                    # list all databases
  pubd db drafts             # show whether pubd-drafts.db is local
  pubd db --local            # mark the default database as local
  pubd db drafts --share     # mark pubd-drafts.db as shared

Local databases are gitignored; shared ones are committed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func label(local bool) string {
	if local {
		return "local"
	}
	return "shared"
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	var pubdDir string
	if d := cmd.Dir(); d != "" {
		pubdDir = filepath.Join(d, repo.Dir)
	}
	var name string
	if len(args) == 1 {
		name = args[0]
	}

	action := "status"
	switch {
	case local:
		action = "ignore"
	case share:
		action = "unignore"
	case len(args) == 0:
		action = "list"
	}

	err := dbAction(action, name, pubdDir)
	log.Event("core:db", action).
		Author(cmd.Author()).
		Detail("db", name).
		Detail("dir", cmd.Dir()).
		Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("db %s: %w", action, err))
	}
	return nil
}

func dbAction(action, name, pubdDir string) error {
	if action == "list" {
		return listDBs(pubdDir)
	}

	var err error
	isLocal := action == "ignore"
	switch action {
	case "ignore":
		err = repo.IgnoreDB(name, pubdDir)
	case "unignore":
		err = repo.UnignoreDB(name, pubdDir)
	default:
		isLocal, err = repo.IsIgnored(name, pubdDir)
	}
	if err != nil {
		return err
	}

	file := repo.DBFileName(name)
	switch {
	case cmd.JSON():
		return cmd.PrintJSON(map[string]any{"file": file, "local": isLocal})
	case action == "status":
		fmt.Fprintf(cmd.Out(), "%s: %s\n", file, label(isLocal))
	default:
		fmt.Fprintf(cmd.Out(), "%s marked as %s\n", file, label(isLocal))
	}
	return nil
}

func listDBs(pubdDir string) error {
	dbs, err := repo.ListDBs(pubdDir)
	if err != nil {
		return err
	}
	if cmd.JSON() {
		return cmd.PrintJSON(dbs)
	}
	if len(dbs) == 0 {
		fmt.Fprintln(cmd.Out(), "No databases found")
	}
	for _, db := range dbs {
		fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, label(db.Local))
	}
	return nil
}
