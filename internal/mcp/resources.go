// resources.go implements MCP resource handlers for object access.
//
// Resources give read-only access to object content via URI, so a client
// can load context without calling a tool. URIs follow
// pubd://objects/{path}; a key works in place of the path.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyPath indicates a missing object path in a resource URI.
	ErrEmptyPath = errors.New("empty object path")
)

// readObjectResource reads an object and returns it as resource contents.
func (h *handlers) readObjectResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	if h.svc == nil {
		return nil, errors.New(ErrNotInitialised)
	}

	path, err := parseObjectURI(uri)
	if err != nil {
		return nil, err
	}

	o, err := h.svc.Resolve(ctx, path, false)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     o.Content,
		},
	}, nil
}

// parseObjectURI extracts the path from pubd://objects/{path}.
func parseObjectURI(uri string) (string, error) {
	const prefix = "pubd://objects/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" {
		return "", ErrEmptyPath
	}
	return rest, nil
}
