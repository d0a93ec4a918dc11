// Package extension is the plugin layer of pubd. Each extension owns a set
// of CLI commands and, optionally, MCP tools and event handlers. Extensions
// register from init() and receive the shared service once a command needs
// the store.
package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

// Extension is implemented by every extension.
type Extension interface {
	Name() string
	Commands() []*cobra.Command
	MCPTools() []MCPTool
}

// Initializable extensions receive the Context before any of their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless extensions name top-level commands that run without opening
// the store, such as serve (which opens it on pubd_init) or version.
type Storeless interface {
	NoStoreCommands() []string
}

// MCPTool is a tool definition plus the function that answers it.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler answers one tool call. Failures the caller should see are
// returned as tool results built with mcp.NewToolResultError, not as err.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
