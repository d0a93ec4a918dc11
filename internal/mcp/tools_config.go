// tools_config.go implements pubd_config_get and pubd_config_set.
//
// A successful set reloads the running service so new limits apply to the
// next publish without restarting the server.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/pubd/internal/config"
	"github.com/jpl-au/pubd/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// configGet handles pubd_config_get tool calls. Without a key every known
// setting is returned.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	key := getString(req, "key", "")
	l := log.Event("mcp:config_get", "get").Author("mcp").Detail("key", key)

	cfg, err := config.Load()
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if key == "" {
		l.Write(nil)
		return jsonResult(cfg.All())
	}

	v, err := cfg.Get(key)
	l.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]string{key: v})
}

// configSet handles pubd_config_set tool calls.
func (h *handlers) configSet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := h.requireInit(); res != nil {
		return res, nil
	}

	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:config_set", "set").Author("mcp").Detail("key", key).Detail("value", value)

	err = setConfig(key, value)
	l.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.svc.ReloadConfig(); err != nil {
		log.Event("mcp:config_set", "reload").Author("mcp").Write(err)
		return mcp.NewToolResultText(fmt.Sprintf("%s = %s (warning: reload failed, restart server to apply: %v)", key, value, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}

func setConfig(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	return cfg.Save()
}
