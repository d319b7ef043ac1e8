// Package dashboard serves the signed-in landing page with recent teams.
package dashboard

import (
	"net/http"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
)

// Config wires the dashboard module.
type Config struct {
	Dependencies module.Dependencies
	Teams        TeamSource
}

// Module provides authenticated dashboard routes.
type Module struct {
	cfg Config
}

// New returns a dashboard module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.cfg.Teams), m.cfg.Dependencies))
	return module.Mount{Prefix: routepath.DashboardPrefix, Handler: mux}, nil
}
