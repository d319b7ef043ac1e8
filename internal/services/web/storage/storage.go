package storage

import (
	"context"
	"time"

	"github.com/taskmate/taskmate-web/internal/taskmate"
)

// Session is one signed-in browser. Credentials holds the backend cookie
// header replayed on every backend call made for this browser.
type Session struct {
	ID          string
	User        taskmate.User
	Credentials string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// CacheEntry stores one derived backend payload for a user.
type CacheEntry struct {
	CacheKey     string
	Scope        string
	UserID       string
	PayloadBytes []byte
	RefreshedAt  time.Time
	ExpiresAt    time.Time
}

// Fresh reports whether the entry may still be served at now.
func (e CacheEntry) Fresh(now time.Time) bool {
	return e.ExpiresAt.After(now)
}

// Avatar is one uploaded profile image.
type Avatar struct {
	UserID      string
	ContentType string
	Data        []byte
	UpdatedAt   time.Time
}

// SessionStore persists browser sessions.
type SessionStore interface {
	PutSession(ctx context.Context, session Session) error
	// GetSession returns found=false for unknown or expired sessions.
	GetSession(ctx context.Context, sessionID string, now time.Time) (Session, bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// CacheStore persists derived read caches.
type CacheStore interface {
	GetCacheEntry(ctx context.Context, cacheKey string) (CacheEntry, bool, error)
	PutCacheEntry(ctx context.Context, entry CacheEntry) error
	DeleteCacheEntry(ctx context.Context, cacheKey string) error
	DeleteUserCacheEntries(ctx context.Context, userID string) error
}

// AvatarStore persists uploaded profile images.
type AvatarStore interface {
	PutAvatar(ctx context.Context, avatar Avatar) error
	GetAvatar(ctx context.Context, userID string) (Avatar, bool, error)
}

// Store is the full web persistence contract.
type Store interface {
	SessionStore
	CacheStore
	AvatarStore
	Close() error
}
