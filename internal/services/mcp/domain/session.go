package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/taskmate/taskmate-web/internal/platform/timeouts"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

// ErrUnauthorized reports that the backend rejected the service credentials
// even after a fresh login.
var ErrUnauthorized = errors.New("backend rejected credentials")

// Backend is the subset of the TaskMate client used by tool handlers.
type Backend interface {
	Login(ctx context.Context, email, password string) (*taskmate.Response, error)
	CreateTeam(ctx context.Context, creds taskmate.Credentials, name, description string) (*taskmate.Response, error)
	DeleteTeam(ctx context.Context, creds taskmate.Credentials, teamKey string) (*taskmate.Response, error)
	UpdateTeam(ctx context.Context, creds taskmate.Credentials, in taskmate.TeamInput) (*taskmate.Response, error)
	SearchTeam(ctx context.Context, creds taskmate.Credentials, teamKey string) (*taskmate.Response, error)
	ListAdminTeams(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error)
	ListMemberTeams(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error)
	GetProfile(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error)
}

// Session logs in with the configured account on first use and again
// whenever the backend answers 401 or the token has expired.
//
// Safe for concurrent use.
type Session struct {
	backend  Backend
	email    string
	password string
	now      func() time.Time

	mu    sync.Mutex
	creds taskmate.Credentials
}

// NewSession builds a session for the given account.
func NewSession(backend Backend, email, password string) *Session {
	return &Session{
		backend:  backend,
		email:    strings.TrimSpace(email),
		password: password,
		now:      time.Now,
	}
}

// Credentials returns live credentials, logging in when none are held.
func (s *Session) Credentials(ctx context.Context) (taskmate.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.creds.IsZero() {
		if expiry, ok := s.creds.TokenExpiry(); !ok || s.now().Before(expiry) {
			return s.creds, nil
		}
	}
	if s.email == "" || s.password == "" {
		return taskmate.Credentials{}, fmt.Errorf("mcp account email and password are required")
	}
	resp, err := s.backend.Login(ctx, s.email, s.password)
	if err != nil {
		return taskmate.Credentials{}, fmt.Errorf("login: %w", err)
	}
	if !resp.Succeeded() {
		return taskmate.Credentials{}, fmt.Errorf("login: %s", resp.Message("Login failed"))
	}
	creds := taskmate.CredentialsFromCookies(resp.Cookies)
	if creds.IsZero() {
		return taskmate.Credentials{}, fmt.Errorf("login: backend returned no session cookie")
	}
	s.creds = creds
	return creds, nil
}

// invalidate drops held credentials so the next call logs in again.
func (s *Session) invalidate() {
	s.mu.Lock()
	s.creds = taskmate.Credentials{}
	s.mu.Unlock()
}

// call runs fn with credentials, retrying once after a fresh login when the
// backend answers 401.
func (s *Session) call(ctx context.Context, fn func(context.Context, taskmate.Credentials) (*taskmate.Response, error)) (*taskmate.Response, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeouts.BackendRequest)
	defer cancel()

	for attempt := 0; attempt < 2; attempt++ {
		creds, err := s.Credentials(runCtx)
		if err != nil {
			return nil, err
		}
		resp, err := fn(runCtx, creds)
		if err != nil {
			return nil, err
		}
		if resp.Status != http.StatusUnauthorized {
			return resp, nil
		}
		s.invalidate()
	}
	return nil, ErrUnauthorized
}

// failure converts an unsuccessful reply into an error.
func failure(op string, resp *taskmate.Response) error {
	return fmt.Errorf("%s failed (%d): %s", op, resp.Status, resp.Message(http.StatusText(resp.Status)))
}
