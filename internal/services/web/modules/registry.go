package modules

import (
	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/modules/dashboard"
	"github.com/taskmate/taskmate-web/internal/services/web/modules/passwordreset"
	"github.com/taskmate/taskmate-web/internal/services/web/modules/profile"
	"github.com/taskmate/taskmate-web/internal/services/web/modules/public"
	"github.com/taskmate/taskmate-web/internal/services/web/modules/teams"
)

// DefaultPublicModules returns the modules served without a session.
func DefaultPublicModules(deps Dependencies, shared module.Dependencies) []Module {
	var (
		auth  public.AuthGateway
		reset passwordreset.ResetGateway
	)
	if deps.Backend != nil {
		auth, reset = deps.Backend, deps.Backend
	}
	return []Module{
		public.New(public.Config{Dependencies: shared, Gateway: auth, Sessions: deps.Sessions, Limiter: deps.Limiter}),
		passwordreset.New(passwordreset.Config{Dependencies: shared, Gateway: reset, Limiter: deps.Limiter}),
	}
}

// DefaultProtectedModules returns the modules mounted under /app/.
func DefaultProtectedModules(deps Dependencies, shared module.Dependencies) []Module {
	var (
		teamGateway    teams.TeamGateway
		profileGateway profile.ProfileGateway
		recentTeams    dashboard.TeamSource
		teamLists      teams.TeamLists
	)
	if deps.Backend != nil {
		teamGateway, profileGateway = deps.Backend, deps.Backend
	}
	if deps.Teams != nil {
		recentTeams, teamLists = deps.Teams, deps.Teams
	}
	return []Module{
		dashboard.New(dashboard.Config{Dependencies: shared, Teams: recentTeams}),
		teams.New(teams.Config{Dependencies: shared, Gateway: teamGateway, Lists: teamLists}),
		profile.New(profile.Config{Dependencies: shared, Gateway: profileGateway, Sessions: deps.Sessions, Avatars: deps.Avatars}),
	}
}
