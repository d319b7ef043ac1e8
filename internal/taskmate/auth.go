package taskmate

import (
	"context"
	"net/http"
)

// DefaultRole is the role sent with every signup.
const DefaultRole = "user"

// Signup registers an account. An empty Role is sent as DefaultRole.
func (c *Client) Signup(ctx context.Context, in SignupInput) (*Response, error) {
	if in.Role == "" {
		in.Role = DefaultRole
	}
	return c.do(ctx, "Signup", http.MethodPost, "/taskmate/auth/signup", Credentials{}, in)
}

// Login authenticates; the reply cookies carry the backend session.
func (c *Client) Login(ctx context.Context, email, password string) (*Response, error) {
	body := map[string]string{"email": email, "password": password}
	return c.do(ctx, "Login", http.MethodPost, "/taskmate/auth/login", Credentials{}, body)
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context, creds Credentials) (*Response, error) {
	return c.do(ctx, "Logout", http.MethodGet, "/taskmate/auth/logout", creds, nil)
}

// ResetPassword changes the password of a signed-in user.
func (c *Client) ResetPassword(ctx context.Context, creds Credentials, oldPassword, newPassword string) (*Response, error) {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.do(ctx, "ResetPassword", http.MethodPost, "/taskmate/auth/resetpass", creds, body)
}

// SetNewPassword completes the forgot-password flow with the token returned by
// VerifyOTP.
func (c *Client) SetNewPassword(ctx context.Context, token, newPassword string) (*Response, error) {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.do(ctx, "SetNewPassword", http.MethodPatch, "/taskmate/auth/set-new-password", Credentials{}, body)
}

// SendOTP emails a one-time code to email.
func (c *Client) SendOTP(ctx context.Context, email string) (*Response, error) {
	body := map[string]string{"email": email, "otpType": "email"}
	return c.do(ctx, "SendOTP", http.MethodPost, "/taskmate/otp/send-otp", Credentials{}, body)
}

// VerifyOTP checks a one-time code. A reset token is returned in data.token.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*Response, error) {
	body := map[string]string{"email": email, "otp": otp}
	return c.do(ctx, "VerifyOTP", http.MethodPost, "/taskmate/otp/verify-otp", Credentials{}, body)
}

// ResetToken extracts data.token from a VerifyOTP reply.
func ResetToken(resp *Response) string {
	var data struct {
		Token string `json:"token"`
	}
	if resp.DecodeData(&data) != nil {
		return ""
	}
	return data.Token
}
