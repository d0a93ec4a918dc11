// tools_util.go holds parameter helpers shared by the MCP tool handlers.
//
// Extraction is permissive: a missing or mistyped optional parameter falls
// back to its default instead of failing the call.

package mcp

import (
	"github.com/jpl-au/pubd/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
)

func arguments(req mcp.CallToolRequest) map[string]any {
	args, _ := req.Params.Arguments.(map[string]any)
	return args
}

// getString returns the named string parameter or def.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool returns the named boolean parameter or def. A string "true" is
// not accepted.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	if v, ok := arguments(req)[name].(bool); ok {
		return v
	}
	return def
}

// getStrings returns the named array parameter, skipping non-string
// elements. Absent parameters return nil; an empty array returns an empty
// slice so callers can tell the two apart.
func getStrings(req mcp.CallToolRequest, name string) []string {
	arr, ok := arguments(req)[name].([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// jsonResult wraps v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
