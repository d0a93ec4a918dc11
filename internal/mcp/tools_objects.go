// tools_objects.go implements MCP tools for object CRUD operations.
//
// These tools mirror the CLI commands (ls, show, write, rm, restore) but
// return structured JSON for LLM consumption. Errors come back as MCP tool
// error results so the LLM receives feedback it can act on. Tools accept
// either object paths or 8-character keys.

package mcp

import (
	"context"
	"fmt"
	"io"

	"github.com/jpl-au/pubd/internal/log"
	"github.com/jpl-au/pubd/internal/ls"
	"github.com/jpl-au/pubd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

// listObjects handles pubd_list tool calls.
//
// Delegates to internal/ls so that filtering and ordering match the CLI.
func (h *handlers) listObjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	opts := ls.Options{
		Prefix:      getString(req, "prefix", ""),
		Published:   getBool(req, "published", false),
		IncludeAll:  getBool(req, "include_deleted", false),
		DeletedOnly: getBool(req, "deleted_only", false),
		Tag:         store.Tag(getStrings(req, "tag")),
		Reverse:     getBool(req, "reverse", false),
	}

	sortBy := getString(req, "sort", "")
	if sortBy != "" && sortBy != "name" && sortBy != "time" {
		return mcp.NewToolResultError(fmt.Sprintf("invalid sort field %q: must be 'name' or 'time'", sortBy)), nil
	}
	opts.Sort = ls.SortField(sortBy)

	var err error
	l := log.Event("mcp:list", "list").Author("mcp").Path(opts.Prefix).Detail("published", opts.Published)
	defer func() { l.Write(err) }()

	res, err := ls.Run(ctx, io.Discard, h.svc, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	l.Detail("count", res.Count())

	return jsonResult(res.ToJSON())
}

// readObjectTool handles pubd_read tool calls.
//
// A single path returns a plain object, several return an array.
func (h *handlers) readObjectTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	paths := getStrings(req, "paths")
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths is required"), nil
	}
	includeDeleted := getBool(req, "include_deleted", false)

	l := log.Event("mcp:read", "read").Author("mcp")
	if len(paths) == 1 {
		l.Path(paths[0])
	} else {
		l.Detail("paths", paths)
	}

	var objs []store.ObjectJSON
	for _, p := range paths {
		o, err := h.svc.Resolve(ctx, p, includeDeleted)
		if err != nil {
			l.Write(err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		objs = append(objs, o.ToJSON(true))
	}
	l.Detail("count", len(objs)).Write(nil)

	if len(objs) == 1 {
		return jsonResult(objs[0])
	}
	return jsonResult(objs)
}

// writeObject handles pubd_write tool calls. Author is required so every
// save is attributable.
func (h *handlers) writeObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content is required"), nil //nolint:nilerr
	}
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError("author is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:write", "write").Author(author).Path(path)

	o, created, err := h.svc.Write(ctx, path, content, author)
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	l.ResultRevision(o.Revision).Detail("created", created).Write(nil)

	return jsonResult(o.ToJSON(false))
}

// deleteObject handles pubd_delete tool calls.
func (h *handlers) deleteObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	o, err := h.svc.Delete(ctx, path)
	l := log.Event("mcp:delete", "delete").Author("mcp").Path(path)
	if o != nil {
		l.Resolved(o.Path)
	}
	l.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted %s", o.Path)), nil
}

// restoreObject handles pubd_restore tool calls.
func (h *handlers) restoreObject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}

	o, err := h.svc.Restore(ctx, path)

	log.Event("mcp:restore", "restore").Author("mcp").Path(path).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(o.ToJSON(false))
}

// stats handles pubd_stats tool calls.
func (h *handlers) stats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if result := h.requireInit(); result != nil {
		return result, nil
	}

	st, err := h.svc.Stats(ctx)

	log.Event("mcp:stats", "stats").Author("mcp").Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]int64{
		"objects":    st.Objects,
		"published":  st.Published,
		"deleted":    st.Deleted,
		"tag_values": st.TagValues,
		"authors":    st.Authors,
	})
}
