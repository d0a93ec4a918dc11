// Package object provides the object extension for content operations.
// Registers commands: write, cat, ls, rm, restore, import, export.

package object

import (
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/service"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the object extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "object".
func (e *Extension) Name() string { return "object" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the object content commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newWriteCmd(),
		e.newCatCmd(),
		e.newLsCmd(),
		e.newRmCmd(),
		e.newRestoreCmd(),
		e.newImportCmd(),
		e.newExportCmd(),
	}
}

// MCPTools returns nil; object tools are provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
