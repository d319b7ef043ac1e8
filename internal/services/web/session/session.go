// Package session issues and resolves server-side browser sessions that hold
// the backend credentials and a snapshot of the signed-in user.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

// DefaultTTL bounds a session when the backend announces no shorter expiry.
const DefaultTTL = 24 * time.Hour

// ErrExpired is returned by Create when the backend credentials are already
// past their expiry.
var ErrExpired = errors.New("session: credentials already expired")

// Manager creates, resolves and destroys sessions.
type Manager struct {
	store webstorage.SessionStore
	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		if newID != nil {
			m.newID = newID
		}
	}
}

// NewManager builds a manager over store. A non-positive ttl uses DefaultTTL.
func NewManager(store webstorage.SessionStore, ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		store: store,
		ttl:   ttl,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create stores a session for user. loginCookies are the Set-Cookie values
// of the login reply; they become the replayed credentials and may shorten
// the session expiry.
func (m *Manager) Create(ctx context.Context, user taskmate.User, loginCookies []*http.Cookie) (webstorage.Session, error) {
	if m == nil || m.store == nil {
		return webstorage.Session{}, errors.New("session: store is not configured")
	}
	now := m.now()
	creds := taskmate.CredentialsFromCookies(loginCookies)
	expiresAt := ExpiresAt(now, m.ttl, creds, loginCookies)
	if !expiresAt.After(now) {
		return webstorage.Session{}, ErrExpired
	}
	session := webstorage.Session{
		ID:          m.newID(),
		User:        user,
		Credentials: creds.Header(),
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
	}
	if err := m.store.PutSession(ctx, session); err != nil {
		return webstorage.Session{}, fmt.Errorf("session: create: %w", err)
	}
	return session, nil
}

// Resolve loads a live session by id.
func (m *Manager) Resolve(ctx context.Context, sessionID string) (webstorage.Session, bool, error) {
	if m == nil || m.store == nil {
		return webstorage.Session{}, false, nil
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return webstorage.Session{}, false, nil
	}
	return m.store.GetSession(ctx, sessionID, m.now())
}

// UpdateUser replaces the user snapshot of an existing session.
func (m *Manager) UpdateUser(ctx context.Context, session webstorage.Session, user taskmate.User) (webstorage.Session, error) {
	if m == nil || m.store == nil {
		return webstorage.Session{}, errors.New("session: store is not configured")
	}
	session.User = user
	if err := m.store.PutSession(ctx, session); err != nil {
		return webstorage.Session{}, fmt.Errorf("session: update user: %w", err)
	}
	return session, nil
}

// Destroy deletes a session. Unknown ids are ignored.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if m == nil || m.store == nil || strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return m.store.DeleteSession(ctx, sessionID)
}

// Credentials parses the backend credentials held by session.
func Credentials(session webstorage.Session) taskmate.Credentials {
	creds, err := taskmate.ParseCredentials(session.Credentials)
	if err != nil {
		return taskmate.Credentials{}
	}
	return creds
}

// ExpiresAt is the earliest of now+ttl, the credential JWT exp and the login
// cookie expiry.
func ExpiresAt(now time.Time, ttl time.Duration, creds taskmate.Credentials, loginCookies []*http.Cookie) time.Time {
	expiresAt := now.Add(ttl)
	if exp, ok := creds.TokenExpiry(); ok && exp.Before(expiresAt) {
		expiresAt = exp
	}
	if exp, ok := taskmate.CookieExpiry(loginCookies, now); ok && exp.Before(expiresAt) {
		expiresAt = exp
	}
	return expiresAt
}
