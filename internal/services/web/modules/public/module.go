package public

import (
	"net/http"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/ratelimit"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
)

// Config wires the public module. A nil Gateway or Sessions yields a module
// whose auth forms report the backend as unavailable.
type Config struct {
	Dependencies module.Dependencies
	Gateway      AuthGateway
	Sessions     SessionIssuer
	Limiter      *ratelimit.Limiter
}

// Module provides the landing page, auth forms and root utility routes.
type Module struct {
	cfg Config
}

// New returns a public module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable identifier for diagnostics and startup logs.
func (Module) ID() string { return "public" }

// Mount wires public routes under the root prefix.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.cfg.Gateway, m.cfg.Sessions), m.cfg.Dependencies, m.cfg.Limiter)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
