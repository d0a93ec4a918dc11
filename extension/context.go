// context.go defines what an extension can reach: the object service and
// the configuration in effect for this process.

package extension

import (
	"github.com/jpl-au/pubd/internal/config"
	"github.com/jpl-au/pubd/internal/service"
)

// Context is handed to Init, event handlers and MCP handlers.
type Context interface {
	Service() service.Service
	// Config may be nil in tests; use config defaults in that case.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	cfg *config.Config
}

// NewContext binds svc and cfg for extensions.
func NewContext(svc service.Service, cfg *config.Config) Context {
	return extContext{svc: svc, cfg: cfg}
}

func (c extContext) Service() service.Service { return c.svc }
func (c extContext) Config() *config.Config   { return c.cfg }
