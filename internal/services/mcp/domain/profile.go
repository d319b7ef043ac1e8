package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

// ProfileGetInput represents the MCP tool input for reading the profile.
type ProfileGetInput struct{}

// ProfileGetResult represents the MCP tool output for reading the profile.
type ProfileGetResult struct {
	ID          string `json:"id" jsonschema:"user identifier"`
	Name        string `json:"name" jsonschema:"display name"`
	Email       string `json:"email" jsonschema:"account email"`
	Designation string `json:"designation,omitempty" jsonschema:"job title"`
	Role        string `json:"role,omitempty" jsonschema:"account role"`
	Bio         string `json:"bio,omitempty" jsonschema:"short biography"`
	Location    string `json:"location,omitempty" jsonschema:"location"`
	Website     string `json:"website,omitempty" jsonschema:"personal website"`
}

// ProfileGetTool defines the MCP tool schema for reading the profile.
func ProfileGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "profile_get",
		Description: "Returns the profile of the configured account",
	}
}

// ProfileGetHandler reads the account profile.
func ProfileGetHandler(client Backend, session *Session) mcp.ToolHandlerFor[ProfileGetInput, ProfileGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ProfileGetInput) (*mcp.CallToolResult, ProfileGetResult, error) {
		resp, err := session.call(ctx, func(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error) {
			return client.GetProfile(ctx, creds)
		})
		if err != nil {
			return nil, ProfileGetResult{}, fmt.Errorf("get profile: %w", err)
		}
		user, ok := taskmate.ProfileUser(resp)
		if !ok {
			return nil, ProfileGetResult{}, failure("get profile", resp)
		}
		return &mcp.CallToolResult{}, ProfileGetResult{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			Designation: user.Designation,
			Role:        user.Role,
			Bio:         user.Bio,
			Location:    user.Location,
			Website:     user.Website,
		}, nil
	}
}
