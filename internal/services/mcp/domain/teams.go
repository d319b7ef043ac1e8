package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

const (
	teamRoleAdmin  = "admin"
	teamRoleMember = "member"
)

// TeamSummary is the MCP view of one team.
type TeamSummary struct {
	ID          string `json:"id" jsonschema:"team identifier"`
	Key         string `json:"key" jsonschema:"team key used to search and modify the team"`
	Name        string `json:"name" jsonschema:"team name"`
	Description string `json:"description,omitempty" jsonschema:"team description"`
	MemberCount int    `json:"member_count" jsonschema:"number of team members"`
	Role        string `json:"role,omitempty" jsonschema:"caller relationship to the team: admin or member"`
	CreatedAt   string `json:"created_at,omitempty" jsonschema:"RFC3339 creation timestamp"`
}

func teamSummary(team taskmate.Team, role string) TeamSummary {
	return TeamSummary{
		ID:          team.ID,
		Key:         team.TeamKey,
		Name:        team.TeamName,
		Description: team.TeamDescription,
		MemberCount: team.MemberCount(),
		Role:        role,
		CreatedAt:   team.CreatedAt,
	}
}

// TeamListInput represents the MCP tool input for listing teams.
type TeamListInput struct {
	Role string `json:"role,omitempty" jsonschema:"optional filter: admin, member or empty for both"`
}

// TeamListResult represents the MCP tool output for listing teams.
type TeamListResult struct {
	Teams []TeamSummary `json:"teams" jsonschema:"teams the account administers or belongs to"`
}

// TeamKeyInput identifies a team by key.
type TeamKeyInput struct {
	TeamKey string `json:"team_key" jsonschema:"team key (required)"`
}

// TeamResult wraps a single team.
type TeamResult struct {
	Team TeamSummary `json:"team" jsonschema:"team details"`
}

// TeamCreateInput represents the MCP tool input for creating a team.
type TeamCreateInput struct {
	Name        string `json:"name" jsonschema:"team name (required)"`
	Description string `json:"description,omitempty" jsonschema:"optional team description"`
}

// TeamUpdateInput represents the MCP tool input for updating a team.
type TeamUpdateInput struct {
	TeamKey     string `json:"team_key" jsonschema:"team key (required)"`
	Name        string `json:"name" jsonschema:"new team name (required)"`
	Description string `json:"description,omitempty" jsonschema:"new team description"`
}

// TeamDeleteResult represents the MCP tool output for deleting a team.
type TeamDeleteResult struct {
	TeamKey string `json:"team_key" jsonschema:"deleted team key"`
	Deleted bool   `json:"deleted" jsonschema:"whether the team was deleted"`
}

// TeamListTool defines the MCP tool schema for listing teams.
func TeamListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "team_list",
		Description: "Lists teams the configured account administers and teams it is a member of",
	}
}

// TeamSearchTool defines the MCP tool schema for finding a team by key.
func TeamSearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "team_search",
		Description: "Finds a team by its team key",
	}
}

// TeamCreateTool defines the MCP tool schema for creating teams.
func TeamCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "team_create",
		Description: "Creates a team administered by the configured account",
	}
}

// TeamUpdateTool defines the MCP tool schema for updating teams.
func TeamUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "team_update",
		Description: "Renames or redescribes a team the configured account administers",
	}
}

// TeamDeleteTool defines the MCP tool schema for deleting teams.
func TeamDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "team_delete",
		Description: "Deletes a team the configured account administers",
	}
}

// TeamListHandler lists administered and member teams.
func TeamListHandler(client Backend, session *Session) mcp.ToolHandlerFor[TeamListInput, TeamListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TeamListInput) (*mcp.CallToolResult, TeamListResult, error) {
		role := strings.ToLower(strings.TrimSpace(input.Role))
		if role != "" && role != teamRoleAdmin && role != teamRoleMember {
			return nil, TeamListResult{}, fmt.Errorf("role must be %q or %q", teamRoleAdmin, teamRoleMember)
		}

		result := TeamListResult{Teams: []TeamSummary{}}
		if role != teamRoleMember {
			resp, err := session.call(ctx, func(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error) {
				return client.ListAdminTeams(ctx, creds)
			})
			if err != nil {
				return nil, TeamListResult{}, fmt.Errorf("list admin teams: %w", err)
			}
			if !resp.OK {
				return nil, TeamListResult{}, failure("list admin teams", resp)
			}
			for _, team := range taskmate.Teams(resp) {
				result.Teams = append(result.Teams, teamSummary(team, teamRoleAdmin))
			}
		}
		if role != teamRoleAdmin {
			resp, err := session.call(ctx, func(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error) {
				return client.ListMemberTeams(ctx, creds)
			})
			if err != nil {
				return nil, TeamListResult{}, fmt.Errorf("list member teams: %w", err)
			}
			if !resp.OK {
				return nil, TeamListResult{}, failure("list member teams", resp)
			}
			for _, team := range taskmate.Teams(resp) {
				result.Teams = append(result.Teams, teamSummary(team, teamRoleMember))
			}
		}
		return &mcp.CallToolResult{}, result, nil
	}
}

// TeamSearchHandler finds a team by key.
func TeamSearchHandler(client Backend, session *Session) mcp.ToolHandlerFor[TeamKeyInput, TeamResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TeamKeyInput) (*mcp.CallToolResult, TeamResult, error) {
		key := strings.TrimSpace(input.TeamKey)
		if key == "" {
			return nil, TeamResult{}, fmt.Errorf("team_key is required")
		}
		resp, err := session.call(ctx, func(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error) {
			return client.SearchTeam(ctx, creds, key)
		})
		if err != nil {
			return nil, TeamResult{}, fmt.Errorf("search team: %w", err)
		}
		team, found := taskmate.FoundTeam(resp)
		if !found {
			return nil, TeamResult{}, fmt.Errorf("team %q not found", key)
		}
		return &mcp.CallToolResult{}, TeamResult{Team: teamSummary(team, "")}, nil
	}
}

// TeamCreateHandler creates a team.
func TeamCreateHandler(client Backend, session *Session) mcp.ToolHandlerFor[TeamCreateInput, TeamResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TeamCreateInput) (*mcp.CallToolResult, TeamResult, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, TeamResult{}, fmt.Errorf("name is required")
		}
		resp, err := session.call(ctx, func(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error) {
			return client.CreateTeam(ctx, creds, name, strings.TrimSpace(input.Description))
		})
		if err != nil {
			return nil, TeamResult{}, fmt.Errorf("create team: %w", err)
		}
		if !resp.OK {
			return nil, TeamResult{}, failure("create team", resp)
		}
		var team taskmate.Team
		if err := resp.DecodeData(&team); err != nil {
			return nil, TeamResult{}, fmt.Errorf("decode created team: %w", err)
		}
		return &mcp.CallToolResult{}, TeamResult{Team: teamSummary(team, teamRoleAdmin)}, nil
	}
}

// TeamUpdateHandler renames or redescribes a team.
func TeamUpdateHandler(client Backend, session *Session) mcp.ToolHandlerFor[TeamUpdateInput, TeamResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TeamUpdateInput) (*mcp.CallToolResult, TeamResult, error) {
		in := taskmate.TeamInput{
			TeamKey:         strings.TrimSpace(input.TeamKey),
			TeamName:        strings.TrimSpace(input.Name),
			TeamDescription: strings.TrimSpace(input.Description),
		}
		if in.TeamKey == "" {
			return nil, TeamResult{}, fmt.Errorf("team_key is required")
		}
		if in.TeamName == "" {
			return nil, TeamResult{}, fmt.Errorf("name is required")
		}
		resp, err := session.call(ctx, func(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error) {
			return client.UpdateTeam(ctx, creds, in)
		})
		if err != nil {
			return nil, TeamResult{}, fmt.Errorf("update team: %w", err)
		}
		if !resp.OK {
			return nil, TeamResult{}, failure("update team", resp)
		}
		team := taskmate.Team{TeamKey: in.TeamKey, TeamName: in.TeamName, TeamDescription: in.TeamDescription}
		if resp.HasData() {
			if err := resp.DecodeData(&team); err != nil {
				return nil, TeamResult{}, fmt.Errorf("decode updated team: %w", err)
			}
		}
		return &mcp.CallToolResult{}, TeamResult{Team: teamSummary(team, teamRoleAdmin)}, nil
	}
}

// TeamDeleteHandler deletes a team.
func TeamDeleteHandler(client Backend, session *Session) mcp.ToolHandlerFor[TeamKeyInput, TeamDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TeamKeyInput) (*mcp.CallToolResult, TeamDeleteResult, error) {
		key := strings.TrimSpace(input.TeamKey)
		if key == "" {
			return nil, TeamDeleteResult{}, fmt.Errorf("team_key is required")
		}
		resp, err := session.call(ctx, func(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error) {
			return client.DeleteTeam(ctx, creds, key)
		})
		if err != nil {
			return nil, TeamDeleteResult{}, fmt.Errorf("delete team: %w", err)
		}
		if !resp.OK {
			return nil, TeamDeleteResult{}, failure("delete team", resp)
		}
		return &mcp.CallToolResult{}, TeamDeleteResult{TeamKey: key, Deleted: true}, nil
	}
}
