package teams

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskmate/taskmate-web/internal/platform/logging"
	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/taskmate"
	"go.uber.org/zap"
)

// TeamGateway is the slice of the backend client used for team mutations
// and key lookups.
type TeamGateway interface {
	CreateTeam(ctx context.Context, creds taskmate.Credentials, name, description string) (*taskmate.Response, error)
	UpdateTeam(ctx context.Context, creds taskmate.Credentials, in taskmate.TeamInput) (*taskmate.Response, error)
	DeleteTeam(ctx context.Context, creds taskmate.Credentials, teamKey string) (*taskmate.Response, error)
	SearchTeam(ctx context.Context, creds taskmate.Credentials, teamKey string) (*taskmate.Response, error)
}

// TeamLists reads the viewer's team lists and drops cached copies after a
// mutation.
type TeamLists interface {
	AdminTeams(ctx context.Context, userID string, creds taskmate.Credentials) ([]taskmate.Team, error)
	MemberTeams(ctx context.Context, creds taskmate.Credentials) ([]taskmate.Team, error)
	Invalidate(ctx context.Context, userID string)
}

// listing is the teams page state.
type listing struct {
	Admin  []taskmate.Team
	Member []taskmate.Team
	// managed holds the keys of Admin.
	managed map[string]bool
	// Incomplete marks a list that failed to load and is shown empty.
	Incomplete bool
}

func (l listing) manages(teamKey string) bool {
	return l.managed[teamKey]
}

// searchResult is the outcome of a team key lookup. A zero MessageKey with a
// nil Team means no search ran.
type searchResult struct {
	Key        string
	Team       *taskmate.Team
	MessageKey string
}

type service struct {
	gateway TeamGateway
	lists   TeamLists
}

func newService(gateway TeamGateway, lists TeamLists) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if lists == nil {
		lists = unavailableLists{}
	}
	return service{gateway: gateway, lists: lists}
}

// loadListing reads both lists. An expired backend session is returned;
// other failures leave the affected list empty and mark the listing
// incomplete.
func (s service) loadListing(ctx context.Context, userID string, creds taskmate.Credentials) (listing, error) {
	admin, err := s.lists.AdminTeams(ctx, userID, creds)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized {
			return listing{}, err
		}
		logging.FromContext(ctx).Warn("list admin teams", zap.Error(err))
	}
	incomplete := err != nil
	member, err := s.lists.MemberTeams(ctx, creds)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindUnauthorized {
			return listing{}, err
		}
		logging.FromContext(ctx).Warn("list member teams", zap.Error(err))
		incomplete = true
	}
	out := listing{Admin: admin, Member: member, managed: make(map[string]bool, len(admin)), Incomplete: incomplete}
	for _, team := range admin {
		out.managed[team.TeamKey] = true
	}
	return out, nil
}

// search looks a team up by key. A blank key skips the lookup.
func (s service) search(ctx context.Context, creds taskmate.Credentials, teamKey string) searchResult {
	teamKey = strings.TrimSpace(teamKey)
	if teamKey == "" {
		return searchResult{}
	}
	result := searchResult{Key: teamKey}
	resp, err := s.gateway.SearchTeam(ctx, creds, teamKey)
	if err != nil {
		logging.FromContext(ctx).Warn("search team", zap.String("team_key", teamKey), zap.Error(err))
		result.MessageKey = "app.teams.search_not_found"
		return result
	}
	team, ok := taskmate.FoundTeam(resp)
	if !ok {
		result.MessageKey = "app.teams.search_not_found"
		return result
	}
	result.Team = &team
	return result
}

// adminTeam returns the administered team with teamKey.
func (s service) adminTeam(ctx context.Context, userID string, creds taskmate.Credentials, teamKey string) (taskmate.Team, error) {
	admin, err := s.lists.AdminTeams(ctx, userID, creds)
	if err != nil {
		return taskmate.Team{}, err
	}
	for _, team := range admin {
		if team.TeamKey == teamKey {
			return team, nil
		}
	}
	return taskmate.Team{}, apperrors.EK(apperrors.KindNotFound, "app.teams.not_found", "team not found")
}

func (s service) createTeam(ctx context.Context, userID string, creds taskmate.Credentials, name, description string) error {
	resp, err := s.gateway.CreateTeam(ctx, creds, strings.TrimSpace(name), strings.TrimSpace(description))
	if err := mutationError(resp, err, "app.teams.create_failed"); err != nil {
		return err
	}
	s.lists.Invalidate(ctx, userID)
	return nil
}

func (s service) updateTeam(ctx context.Context, userID string, creds taskmate.Credentials, in taskmate.TeamInput) error {
	in.TeamName = strings.TrimSpace(in.TeamName)
	in.TeamDescription = strings.TrimSpace(in.TeamDescription)
	resp, err := s.gateway.UpdateTeam(ctx, creds, in)
	if err := mutationError(resp, err, "app.teams.update_failed"); err != nil {
		return err
	}
	s.lists.Invalidate(ctx, userID)
	return nil
}

func (s service) deleteTeam(ctx context.Context, userID string, creds taskmate.Credentials, teamKey string) error {
	resp, err := s.gateway.DeleteTeam(ctx, creds, strings.TrimSpace(teamKey))
	if err := mutationError(resp, err, "app.teams.delete_failed"); err != nil {
		return err
	}
	s.lists.Invalidate(ctx, userID)
	return nil
}

func mutationError(resp *taskmate.Response, err error, failedKey string) error {
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "core.error.network", err)
	}
	if resp == nil {
		return apperrors.EK(apperrors.KindUnknown, failedKey, "empty backend reply")
	}
	if resp.Status == http.StatusUnauthorized {
		return apperrors.E(apperrors.KindUnauthorized, "backend session expired")
	}
	if !resp.OK {
		return apperrors.Rejected(failedKey, resp.Message(""))
	}
	return nil
}

type unavailableGateway struct{}

var errUnavailable = apperrors.E(apperrors.KindUnavailable, "team backend is not configured")

func (unavailableGateway) CreateTeam(context.Context, taskmate.Credentials, string, string) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) UpdateTeam(context.Context, taskmate.Credentials, taskmate.TeamInput) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) DeleteTeam(context.Context, taskmate.Credentials, string) (*taskmate.Response, error) {
	return nil, errUnavailable
}

func (unavailableGateway) SearchTeam(context.Context, taskmate.Credentials, string) (*taskmate.Response, error) {
	return nil, errUnavailable
}

type unavailableLists struct{}

func (unavailableLists) AdminTeams(context.Context, string, taskmate.Credentials) ([]taskmate.Team, error) {
	return nil, errUnavailable
}

func (unavailableLists) MemberTeams(context.Context, taskmate.Credentials) ([]taskmate.Team, error) {
	return nil, errUnavailable
}

func (unavailableLists) Invalidate(context.Context, string) {}
