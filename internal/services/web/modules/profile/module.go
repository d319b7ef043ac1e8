// Package profile serves the signed-in user's profile card, edit forms,
// avatar upload and password change.
package profile

import (
	"net/http"
	"time"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
)

// Config wires the profile module.
type Config struct {
	Dependencies module.Dependencies
	Gateway      ProfileGateway
	Sessions     SessionUpdater
	Avatars      webstorage.AvatarStore
	// Now overrides the clock used to stamp avatar uploads.
	Now func() time.Time
}

// Module provides the /app/profile/ routes.
type Module struct {
	cfg Config
}

// New returns a profile module.
func New(cfg Config) Module {
	return Module{cfg: cfg}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "profile" }

// Mount wires profile route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	svc := newService(m.cfg.Gateway, m.cfg.Sessions, m.cfg.Avatars, m.cfg.Now)
	registerRoutes(mux, newHandlers(svc, m.cfg.Dependencies))
	return module.Mount{Prefix: routepath.ProfilePrefix, Handler: mux}, nil
}
