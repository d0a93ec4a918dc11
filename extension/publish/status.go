// status.go implements "pubd status" and its MCP counterpart pubd_status.

package publish

import (
	"context"
	"fmt"

	"github.com/jpl-au/pubd/cmd"
	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <path|key>",
		Short: "Show whether an object is published",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p := args[0]
			o, err := e.svc.Resolve(c.Context(), p, false)

			log.Event("publish:status", "status").Author(cmd.Author()).Path(p).Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("status %q: %w", p, err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(resultOf(o))
			}
			fmt.Fprintf(cmd.Out(), "%s: %s\n", o.Path, state(o))
			return nil
		},
	}
}

func state(o *store.Object) string {
	if o.Published() {
		return "published"
	}
	return "unpublished"
}

// MCPTools returns pubd_status.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Tool: mcp.NewTool("pubd_status",
			mcp.WithDescription("Report whether an object is published"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Object path or key")),
		),
		Handler: status,
	}}
}

func status(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	o, err := extCtx.Service().Resolve(ctx, p, false)

	log.Event("mcp:status", "status").Author("mcp").Path(p).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s", o.Path, state(o))), nil
}
