// Package modules defines web module registry helpers.
package modules

import (
	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/modules/passwordreset"
	"github.com/taskmate/taskmate-web/internal/services/web/modules/profile"
	"github.com/taskmate/taskmate-web/internal/services/web/modules/public"
	"github.com/taskmate/taskmate-web/internal/services/web/modules/teams"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/ratelimit"
	"github.com/taskmate/taskmate-web/internal/services/web/session"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/services/web/teamcache"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// Backend is the TaskMate REST surface the modules call. *taskmate.Client
// satisfies it.
type Backend interface {
	public.AuthGateway
	passwordreset.ResetGateway
	teams.TeamGateway
	profile.ProfileGateway
	teamcache.Source
}

// Dependencies carries the collaborators composed into the module registry.
// Each module receives only the narrow interface it declares.
//
// Request-scoped resolvers (viewer, session, cookies) are provided separately
// as module.Dependencies since the server derives them after construction.
type Dependencies struct {
	Backend  Backend
	Sessions *session.Manager
	Teams    *teamcache.Cache
	Avatars  webstorage.AvatarStore
	// Limiter throttles login, signup and OTP submissions.
	Limiter *ratelimit.Limiter
}
