// tools_publish.go implements the publish and unpublish MCP tools.
//
// Publish failures carry an HTTP-style code. Tool errors render it as
// "HTTP <code>: <message>" so an LLM can tell a conflict (already in the
// requested state, nothing to retry) from a failed save.

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/publish"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

type toggleFunc func(ctx context.Context, pathOrKey, author string) (*store.Object, error)

// publishObject handles pubd_publish tool calls.
func (h *handlers) publishObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}
	return h.toggle(ctx, req, "publish", h.svc.Publish)
}

// unpublishObject handles pubd_unpublish tool calls.
func (h *handlers) unpublishObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}
	return h.toggle(ctx, req, "unpublish", h.svc.Unpublish)
}

func (h *handlers) toggle(ctx context.Context, req mcp.CallToolRequest, op string, fn toggleFunc) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:"+op, op).Author(author).Path(path)

	o, err := fn(ctx, path, author)
	if err != nil {
		l.Write(err)
		return toolError(err), nil
	}
	l.Resolved(o.Path).ResultRevision(o.Revision).Write(nil)

	return jsonResult(o.ToJSON(false))
}

// toolError renders a service error for the LLM, prefixing publish errors
// with their status code.
func toolError(err error) *mcp.CallToolResult {
	var pe *publish.Error
	if errors.As(err, &pe) {
		return mcp.NewToolResultError(fmt.Sprintf("HTTP %d: %s", pe.Code, pe.Message))
	}
	return mcp.NewToolResultError(err.Error())
}
