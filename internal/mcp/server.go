// Package mcp implements the Model Context Protocol server, exposing pubd
// operations to LLMs. This enables AI assistants to read, write, tag and
// publish objects through a standardised protocol.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/pubd/extension"
	"github.com/jpl-au/pubd/internal/config"
	"github.com/jpl-au/pubd/internal/document"
	"github.com/jpl-au/pubd/internal/repo"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when the store has not been initialised.
// The LLM should call pubd_init to create a store before using other tools.
const ErrNotInitialised = "store not initialised - call pubd_init first"

// Serve starts the MCP server over stdio.
//
// The server starts even if no store exists so that an LLM can call
// pubd_init. Tools that require a store return ErrNotInitialised until then.
func Serve(db string) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db}

	// Try to open existing store; nil service is OK (uninitialised mode)
	svc, err := document.New(db)
	if err != nil && !errors.Is(err, repo.ErrNotInitialised) {
		slog.Error("failed to open store", "error", err)
		return err
	}
	if err == nil {
		h.svc = svc
		defer svc.Close()
	} else {
		slog.Info("pubd not initialised, starting in uninitialised mode - call pubd_init to create store")
	}

	s := NewServer(h)

	slog.Info("pubd MCP server ready", "version", Version, "transport", "stdio")

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every resource and tool registered.
func NewServer(h *handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"pubd",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)
	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)
	return s
}

// registerExtensionTools adds the tools declared by registered extensions.
// Handlers receive a context built on the current service.
func registerExtensionTools(s *server.MCPServer, h *handlers) {
	extension.EachTool(func(_ extension.Extension, t extension.MCPTool) {
		s.AddTool(t.Tool, h.extensionHandler(t.Handler))
	})
}

func (h *handlers) extensionHandler(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if res := h.requireInit(); res != nil {
			return res, nil
		}
		cfg, err := config.Load()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return fn(ctx, extension.NewContext(h.svc, cfg), req)
	}
}

// handlers provides MCP request handlers with access to the object store.
// The svc field may be nil if the store has not been initialised.
type handlers struct {
	db  string            // database name for init
	svc *document.Service // nil if not initialised
}

// requireInit returns an error result if the store is not initialised.
// Tools that require a store should call this first.
func (h *handlers) requireInit() *mcp.CallToolResult {
	if h.svc == nil {
		return mcp.NewToolResultError(ErrNotInitialised)
	}
	return nil
}

// registerResources adds URI-based resource access for direct object reading.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"pubd://objects/{path}",
			"Object",
			mcp.WithTemplateDescription("Read object content by path or key"),
			mcp.WithTemplateMIMEType("text/markdown"),
		),
		h.readObject,
	)
}

// registerTools exposes pubd operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	// Init - works without existing store
	s.AddTool(
		mcp.NewTool("pubd_init",
			mcp.WithDescription("Initialise a new pubd object store. Call this first if other tools return 'store not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, database is gitignored (not committed to version control)")),
		),
		h.initStore,
	)

	s.AddTool(
		mcp.NewTool("pubd_list",
			mcp.WithDescription("List objects in the store"),
			mcp.WithString("prefix", mcp.Description("Filter by path prefix")),
			mcp.WithBoolean("published", mcp.Description("Only published objects")),
			mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted objects")),
			mcp.WithBoolean("deleted_only", mcp.Description("Show only deleted objects")),
			mcp.WithArray("tag", mcp.Description("Only objects carrying this exact tag-value, e.g. [\"lang\", \"go\"]"), mcp.WithStringItems()),
			mcp.WithString("sort", mcp.Description("Sort by 'name' or 'time'")),
			mcp.WithBoolean("reverse", mcp.Description("Reverse sort order")),
		),
		h.listObjects,
	)

	s.AddTool(
		mcp.NewTool("pubd_read",
			mcp.WithDescription("Read one or more objects with content and tags"),
			mcp.WithArray("paths", mcp.Required(), mcp.Description("Object paths or keys"), mcp.WithStringItems()),
			mcp.WithBoolean("include_deleted", mcp.Description("Allow reading deleted objects")),
		),
		h.readObjectTool,
	)

	s.AddTool(
		mcp.NewTool("pubd_write",
			mcp.WithDescription("Write content to an object (create or update). Tags and publish state are kept."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Object path")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Object content")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.writeObject,
	)

	s.AddTool(
		mcp.NewTool("pubd_delete",
			mcp.WithDescription("Soft delete an object (recoverable via pubd_restore)"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Object path or key")),
		),
		h.deleteObject,
	)

	s.AddTool(
		mcp.NewTool("pubd_restore",
			mcp.WithDescription("Restore a soft-deleted object with its tags and publish state"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Object path")),
		),
		h.restoreObject,
	)

	s.AddTool(
		mcp.NewTool("pubd_publish",
			mcp.WithDescription("Publish an object by adding the [\"public\"] marker. Fails with HTTP 409 if already published."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Object path or key")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.publishObject,
	)

	s.AddTool(
		mcp.NewTool("pubd_unpublish",
			mcp.WithDescription("Unpublish an object by removing every [\"public\"] marker. Fails with HTTP 409 if not published."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Object path or key")),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.unpublishObject,
	)

	s.AddTool(
		mcp.NewTool("pubd_tag_add",
			mcp.WithDescription("Add a tag-value to an object. Use pubd_publish for [\"public\"]."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Object path or key")),
			mcp.WithArray("tag", mcp.Required(), mcp.Description("Tag-value, e.g. [\"lang\", \"go\"]"), mcp.WithStringItems()),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.tagAdd,
	)

	s.AddTool(
		mcp.NewTool("pubd_tag_remove",
			mcp.WithDescription("Remove every equal tag-value from an object. Use pubd_unpublish for [\"public\"]."),
			mcp.WithString("path", mcp.Required(), mcp.Description("Object path or key")),
			mcp.WithArray("tag", mcp.Required(), mcp.Description("Tag-value, e.g. [\"lang\", \"go\"]"), mcp.WithStringItems()),
			mcp.WithString("author", mcp.Required(), mcp.Description("Author attribution")),
		),
		h.tagRemove,
	)

	s.AddTool(
		mcp.NewTool("pubd_tags",
			mcp.WithDescription("List the tag-values of an object in stored order"),
			mcp.WithString("path", mcp.Required(), mcp.Description("Object path or key")),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("pubd_stats",
			mcp.WithDescription("Object, published and deleted counts for the store"),
		),
		h.stats,
	)

	s.AddTool(
		mcp.NewTool("pubd_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (author.name, limits.max_tags, http.addr, ...) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("pubd_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("pubd_guide",
			mcp.WithDescription("Get help/guide content for pubd commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'publish', 'tag') or empty for index")),
		),
		h.getGuide,
	)
}

// readObject handles pubd://objects/{path} resource requests.
func (h *handlers) readObject(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readObjectResource(ctx, req.Params.URI)
}
