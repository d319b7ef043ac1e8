package public

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

// fakeGateway implements AuthGateway with canned replies and call tracking.
type fakeGateway struct {
	loginResp   *taskmate.Response
	loginErr    error
	profileResp *taskmate.Response
	profileErr  error
	signupResp  *taskmate.Response
	signupErr   error
	logoutErr   error

	lastEmail    string
	lastSignup   taskmate.SignupInput
	profileCreds taskmate.Credentials
	logoutCalls  int
}

func (f *fakeGateway) Login(_ context.Context, email, _ string) (*taskmate.Response, error) {
	f.lastEmail = email
	return f.loginResp, f.loginErr
}

func (f *fakeGateway) Signup(_ context.Context, in taskmate.SignupInput) (*taskmate.Response, error) {
	f.lastSignup = in
	return f.signupResp, f.signupErr
}

func (f *fakeGateway) Logout(context.Context, taskmate.Credentials) (*taskmate.Response, error) {
	f.logoutCalls++
	return okResponse(nil), f.logoutErr
}

func (f *fakeGateway) GetProfile(_ context.Context, creds taskmate.Credentials) (*taskmate.Response, error) {
	f.profileCreds = creds
	return f.profileResp, f.profileErr
}

// fakeSessions implements SessionIssuer in memory.
type fakeSessions struct {
	createErr  error
	destroyErr error
	created    []webstorage.Session
	destroyed  []string
}

func (f *fakeSessions) Create(_ context.Context, user taskmate.User, loginCookies []*http.Cookie) (webstorage.Session, error) {
	if f.createErr != nil {
		return webstorage.Session{}, f.createErr
	}
	s := webstorage.Session{
		ID:          "sess-1",
		User:        user,
		Credentials: taskmate.CredentialsFromCookies(loginCookies).Header(),
		ExpiresAt:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeSessions) Destroy(_ context.Context, sessionID string) error {
	f.destroyed = append(f.destroyed, sessionID)
	return f.destroyErr
}

func okResponse(data any) *taskmate.Response {
	return envelopeResponse(http.StatusOK, "success", "", data)
}

func envelopeResponse(status int, envelopeStatus, message string, data any) *taskmate.Response {
	raw, _ := json.Marshal(data)
	return &taskmate.Response{
		OK:       status >= 200 && status < 300,
		Status:   status,
		Envelope: &taskmate.Envelope{Status: envelopeStatus, Message: message, Data: raw},
	}
}

func loginResponse() *taskmate.Response {
	resp := okResponse(nil)
	resp.Cookies = []*http.Cookie{{Name: "token", Value: "abc"}}
	return resp
}

func profileResponse() *taskmate.Response {
	return envelopeResponse(http.StatusOK, "Success", "", taskmate.User{ID: "u-1", Name: "Ada Lovelace", Email: "ada@example.com"})
}
