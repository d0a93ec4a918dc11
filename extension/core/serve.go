// serve.go implements "pubd serve", the MCP server over stdio.
//
// Serve opens its own service so it can start before "pubd init" and let
// the client call pubd_init.

package core

import (
	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

  pubd serve --db site    # serve pubd-site.db`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return mcp.Serve(cmd.DB())
		},
	}
}
