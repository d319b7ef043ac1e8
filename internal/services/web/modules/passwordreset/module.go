// Package passwordreset serves the forgot-password wizard: email, one-time
// code, new password, done.
package passwordreset

import (
	"net/http"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/ratelimit"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
)

// Config wires the password reset module.
type Config struct {
	Dependencies module.Dependencies
	Gateway      ResetGateway
	Limiter      *ratelimit.Limiter
}

// Module provides the forgot-password routes.
type Module struct {
	cfg Config
}

// New returns a password reset module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "passwordreset" }

// Mount wires the wizard under /forgot-password/.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(newService(m.cfg.Gateway), m.cfg.Dependencies, m.cfg.Limiter))
	return module.Mount{Prefix: routepath.ForgotPasswordPrefix, Handler: mux}, nil
}
