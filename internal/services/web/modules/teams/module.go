// Package teams serves team listing, search and administration pages.
package teams

import (
	"net/http"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
)

// Config wires the teams module.
type Config struct {
	Dependencies module.Dependencies
	Gateway      TeamGateway
	Lists        TeamLists
}

// Module provides the /app/teams/ routes.
type Module struct {
	cfg Config
}

// New returns a teams module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "teams" }

// Mount wires team route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.cfg.Gateway, m.cfg.Lists), m.cfg.Dependencies))
	return module.Mount{Prefix: routepath.TeamsPrefix, Handler: mux}, nil
}
