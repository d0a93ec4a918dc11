// tools_init.go implements pubd_init, the one store tool usable before a
// store exists.

package mcp

import (
	"context"
	"log/slog"

	"github.com/jpl-au/pubd/internal/document"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// initStore creates the store and opens it for the other tools.
func (h *handlers) initStore(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.svc != nil {
		return mcp.NewToolResultError("store already initialised"), nil
	}

	local := getBool(req, "local", false)
	err := document.Init(false, h.db, local, "")
	if err == nil {
		h.svc, err = document.New(h.db)
	}
	log.Event("mcp:init", "init").Author("mcp").Detail("local", local).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	slog.Info("store initialised", "db", h.db, "local", local)
	msg := "store initialised"
	if local {
		msg += " (local, gitignored)"
	}
	return mcp.NewToolResultText(msg), nil
}
