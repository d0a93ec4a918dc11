// init.go implements "pubd init". Init creates the repository structure
// only; configuration is managed with "pubd config".

package core

import (
	"fmt"
	"path/filepath"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/document"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/repo"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new pubd store",
		Long: `Creates a .pubd/pubd.db database in the current directory.

Use --db to create additional databases:
  pubd init --db site    # creates .pubd/pubd-site.db

Use --dir to create in a different directory:
  pubd init --dir /path/to/project

Use --local to exclude from git:
  pubd init --db drafts --local`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .gitignore, which is meaningless for a
	// store created elsewhere.
	if local && dir != "" {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --local with --dir"))
	}

	err := document.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := filepath.Join(dir, repo.Dir, repo.DBFileName(db))
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"path": loc})
	}
	fmt.Fprintf(cmd.Out(), "Initialised pubd store in %s\n", loc)
	return nil
}
