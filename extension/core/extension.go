// Package core provides the core extension for pubd.
// It registers commands: init, config, serve, http, guide, vacuum, db,
// log, stats, version.
package core

import (
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/config"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the shared service and config for http, vacuum and stats.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the store management and server commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		e.newHTTPCmd(),
		newGuideCmd(),
		e.newVacuumCmd(),
		e.newStatsCmd(),
		newLogCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil; the object tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own lifecycle.
// serve opens its own service so it can start before init. db edits
// .gitignore only. log reads the audit database.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "db", "log", "version"}
}
