package dashboard

import (
	"context"
	"strings"

	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

const recentTeamLimit = 5

// TeamSource lists the teams a user administers. Invalidate forgets any
// cached list so the next call reaches the backend.
type TeamSource interface {
	AdminTeams(ctx context.Context, userID string, creds taskmate.Credentials) ([]taskmate.Team, error)
	Invalidate(ctx context.Context, userID string)
}

// overview is the dashboard state derived from the admin team list.
type overview struct {
	Name        string
	TotalTeams  int
	RecentTeams []taskmate.Team
	Unavailable bool
}

type service struct {
	teams TeamSource
}

type unavailableSource struct{}

func (unavailableSource) AdminTeams(context.Context, string, taskmate.Credentials) ([]taskmate.Team, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "dashboard team source is not configured")
}

func (unavailableSource) Invalidate(context.Context, string) {}

func newService(teams TeamSource) service {
	if teams == nil {
		teams = unavailableSource{}
	}
	return service{teams: teams}
}

// loadOverview degrades to an unavailable notice when the team list cannot be
// loaded, except for an expired backend session which is returned.
func (s service) loadOverview(ctx context.Context, user taskmate.User, creds taskmate.Credentials) (overview, error) {
	view := overview{Name: displayName(user)}
	teams, err := s.teams.AdminTeams(ctx, user.ID, creds)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized {
			return overview{}, err
		}
		view.Unavailable = true
		return view, nil
	}
	view.TotalTeams = len(teams)
	view.RecentTeams = teams[:min(len(teams), recentTeamLimit)]
	return view, nil
}

func (s service) refresh(ctx context.Context, userID string) {
	if userID = strings.TrimSpace(userID); userID != "" {
		s.teams.Invalidate(ctx, userID)
	}
}

func displayName(user taskmate.User) string {
	if name := strings.TrimSpace(user.Name); name != "" {
		return name
	}
	return "User"
}
