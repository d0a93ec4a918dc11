// tools_guide.go implements pubd_guide.

package mcp

import (
	"context"
	"errors"

	"github.com/jpl-au/pubd/guide"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide returns a guide page. An unknown topic lists the real ones so the
// client can retry.
func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")
	page, err := guide.Get(topic)
	log.Event("mcp:guide", "read").Author("mcp").Detail("topic", topic).Write(err)

	var unknown *guide.UnknownTopicError
	switch {
	case errors.As(err, &unknown):
		return jsonResult(map[string]any{"error": err.Error(), "available_topics": unknown.Available})
	case err != nil:
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(page), nil
}
