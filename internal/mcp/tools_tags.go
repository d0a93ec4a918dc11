// tools_tags.go implements MCP tools for raw tag-value operations.
//
// Tag-values are JSON arrays of strings. The publish marker is refused here;
// pubd_publish and pubd_unpublish own it.

package mcp

import (
	"context"

	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// tagAdd handles pubd_tag_add tool calls.
func (h *handlers) tagAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}
	return h.tagChange(ctx, req, "tag_add", h.svc.AddTag)
}

// tagRemove handles pubd_tag_remove tool calls.
func (h *handlers) tagRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}
	return h.tagChange(ctx, req, "tag_remove", h.svc.RemoveTag)
}

type tagFunc func(ctx context.Context, pathOrKey string, tag store.Tag, author string) (*store.Object, error)

func (h *handlers) tagChange(ctx context.Context, req mcp.CallToolRequest, op string, fn tagFunc) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	tag := getStrings(req, "tag")
	if tag == nil {
		return mcp.NewToolResultError("tag is required"), nil
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	o, err := fn(ctx, path, store.Tag(tag), author)

	log.Event("mcp:"+op, op).Author(author).Path(path).Detail("tag", tag).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(o.ToJSON(false))
}

// listTags handles pubd_tags tool calls.
func (h *handlers) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.requireInit(); err != nil {
		return err, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	o, err := h.svc.Resolve(ctx, path, false)

	log.Event("mcp:tags", "list_tags").Author("mcp").Path(path).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(o.Tags().Strings())
}
