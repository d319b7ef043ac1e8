package public

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

// AuthGateway is the slice of the backend client used by the auth forms.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*taskmate.Response, error)
	Signup(ctx context.Context, in taskmate.SignupInput) (*taskmate.Response, error)
	Logout(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error)
	GetProfile(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error)
}

// SessionIssuer creates and destroys browser sessions.
type SessionIssuer interface {
	Create(ctx context.Context, user taskmate.User, loginCookies []*http.Cookie) (webstorage.Session, error)
	Destroy(ctx context.Context, sessionID string) error
}

type service struct {
	auth     AuthGateway
	sessions SessionIssuer
}

func newService(gateway AuthGateway, sessions SessionIssuer) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	if sessions == nil {
		sessions = unavailableSessions{}
	}
	return service{auth: gateway, sessions: sessions}
}

// login authenticates against the backend, loads the profile and opens a
// browser session holding both.
func (s service) login(ctx context.Context, email, password string) (webstorage.Session, error) {
	resp, err := s.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return webstorage.Session{}, apperrors.Wrap(apperrors.KindUnavailable, "core.error.network", err)
	}
	if !resp.Succeeded() {
		return webstorage.Session{}, apperrors.Rejected("auth.login.failed", resp.Message(""))
	}
	creds := taskmate.CredentialsFromCookies(resp.Cookies)
	profile, err := s.auth.GetProfile(ctx, creds)
	if err != nil {
		return webstorage.Session{}, apperrors.Wrap(apperrors.KindUnavailable, "core.error.network", err)
	}
	user, ok := taskmate.ProfileUser(profile)
	if !ok {
		return webstorage.Session{}, apperrors.EK(apperrors.KindUnavailable, "auth.login.profile_failed", "profile fetch failed")
	}
	session, err := s.sessions.Create(ctx, user, resp.Cookies)
	if err != nil {
		return webstorage.Session{}, apperrors.Wrap(apperrors.KindUnavailable, "auth.login.failed", err)
	}
	return session, nil
}

func (s service) signup(ctx context.Context, form signupForm) error {
	resp, err := s.auth.Signup(ctx, taskmate.SignupInput{
		Name:        form.Name,
		Email:       form.Email,
		Password:    form.Password,
		Designation: form.Designation,
		Role:        taskmate.DefaultRole,
	})
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "auth.signup.network", err)
	}
	if resp == nil || !resp.OK {
		return apperrors.Rejected("auth.signup.failed", resp.Message(""))
	}
	return nil
}

// logout ends the backend session best-effort and always drops the local one.
func (s service) logout(ctx context.Context, sessionID string, creds taskmate.Credentials) error {
	if !creds.IsZero() {
		_, _ = s.auth.Logout(ctx, creds)
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sessionID)
}
