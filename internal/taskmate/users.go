package taskmate

import (
	"context"
	"net/http"
)

// GetProfile returns the signed-in user's profile in data.
func (c *Client) GetProfile(ctx context.Context, creds Credentials) (*Response, error) {
	return c.do(ctx, "GetProfile", http.MethodGet, "/taskmate/user/profile", creds, nil)
}

// UpdateProfile replaces the editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, creds Credentials, in ProfileInput) (*Response, error) {
	return c.do(ctx, "UpdateProfile", http.MethodPatch, "/taskmate/user/updateProfile", creds, in)
}

// ProfileUser decodes a successful GetProfile reply.
func ProfileUser(resp *Response) (User, bool) {
	if !resp.Succeeded() {
		return User{}, false
	}
	var user User
	if resp.DecodeData(&user) != nil {
		return User{}, false
	}
	return user, true
}
