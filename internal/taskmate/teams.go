package taskmate

import (
	"context"
	"net/http"
)

// CreateTeam creates a team administered by the caller.
func (c *Client) CreateTeam(ctx context.Context, creds Credentials, name, description string) (*Response, error) {
	body := TeamInput{TeamName: name, TeamDescription: description}
	return c.do(ctx, "CreateTeam", http.MethodPost, "/taskmate/team/createTeam", creds, body)
}

// DeleteTeam deletes the team identified by teamKey.
func (c *Client) DeleteTeam(ctx context.Context, creds Credentials, teamKey string) (*Response, error) {
	body := map[string]string{"teamKey": teamKey}
	return c.do(ctx, "DeleteTeam", http.MethodPost, "/taskmate/team/deleteTeam", creds, body)
}

// UpdateTeam renames or redescribes a team.
func (c *Client) UpdateTeam(ctx context.Context, creds Credentials, in TeamInput) (*Response, error) {
	return c.do(ctx, "UpdateTeam", http.MethodPatch, "/taskmate/team/updateTeam", creds, in)
}

// SearchTeam looks a team up by key.
func (c *Client) SearchTeam(ctx context.Context, creds Credentials, teamKey string) (*Response, error) {
	body := map[string]string{"teamKey": teamKey}
	return c.do(ctx, "SearchTeam", http.MethodPost, "/taskmate/team/searchTeam", creds, body)
}

// ListAdminTeams lists teams the caller administers.
func (c *Client) ListAdminTeams(ctx context.Context, creds Credentials) (*Response, error) {
	return c.do(ctx, "ListAdminTeams", http.MethodGet, "/taskmate/team/listAdminTeams", creds, nil)
}

// ListMemberTeams lists teams the caller belongs to.
func (c *Client) ListMemberTeams(ctx context.Context, creds Credentials) (*Response, error) {
	return c.do(ctx, "ListMemberTeams", http.MethodGet, "/taskmate/team/listMemberTeams", creds, nil)
}

// Teams decodes a list reply. A failed or empty reply yields nil.
func Teams(resp *Response) []Team {
	if resp == nil || !resp.OK {
		return nil
	}
	var teams []Team
	if resp.DecodeData(&teams) != nil {
		return nil
	}
	return teams
}

// FoundTeam decodes a SearchTeam reply. ok is false for failed replies and
// replies without data.
func FoundTeam(resp *Response) (Team, bool) {
	if resp == nil || !resp.OK {
		return Team{}, false
	}
	var team Team
	if resp.DecodeData(&team) != nil {
		return Team{}, false
	}
	return team, true
}
