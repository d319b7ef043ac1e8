// Package teamcache loads a user's team lists from the backend, keeping the
// administered-teams list in the web cache store for a short TTL.
package teamcache

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/taskmate/taskmate-web/internal/platform/logging"
	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
	"go.uber.org/zap"
)

const (
	scopeAdminTeams = "admin_teams"
	// DefaultTTL bounds how long an administered-teams list is served from
	// the cache.
	DefaultTTL = 30 * time.Second
)

// Source is the slice of the backend client that lists teams.
type Source interface {
	ListAdminTeams(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error)
	ListMemberTeams(ctx context.Context, creds taskmate.Credentials) (*taskmate.Response, error)
}

// Cache reads team lists through an optional cache store. A nil store or a
// non-positive TTL disables caching.
type Cache struct {
	source Source
	store  webstorage.CacheStore
	ttl    time.Duration
	now    func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a team list cache.
func New(source Source, store webstorage.CacheStore, ttl time.Duration, opts ...Option) *Cache {
	c := &Cache{source: source, store: store, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func adminTeamsKey(userID string) string {
	return "admin_teams:user:" + strings.TrimSpace(userID)
}

// AdminTeams lists the teams userID administers. A backend 401 is returned as
// an unauthorized error; other rejections yield an empty list.
func (c *Cache) AdminTeams(ctx context.Context, userID string, creds taskmate.Credentials) ([]taskmate.Team, error) {
	if c == nil || c.source == nil {
		return nil, apperrors.E(apperrors.KindUnavailable, "team source is not configured")
	}
	if teams, ok := c.cached(ctx, userID); ok {
		return teams, nil
	}
	resp, err := c.source.ListAdminTeams(ctx, creds)
	teams, err := decodeList(resp, err)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.OK {
		c.put(ctx, userID, teams)
	}
	return teams, nil
}

// MemberTeams lists the teams the caller belongs to. It is never cached.
func (c *Cache) MemberTeams(ctx context.Context, creds taskmate.Credentials) ([]taskmate.Team, error) {
	if c == nil || c.source == nil {
		return nil, apperrors.E(apperrors.KindUnavailable, "team source is not configured")
	}
	resp, err := c.source.ListMemberTeams(ctx, creds)
	return decodeList(resp, err)
}

// Invalidate drops every cache entry owned by userID.
func (c *Cache) Invalidate(ctx context.Context, userID string) {
	userID = strings.TrimSpace(userID)
	if !c.enabled() || userID == "" {
		return
	}
	if err := c.store.DeleteUserCacheEntries(ctx, userID); err != nil {
		logging.FromContext(ctx).Warn("invalidate team cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func decodeList(resp *taskmate.Response, err error) ([]taskmate.Team, error) {
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "core.error.network", err)
	}
	if resp == nil {
		return nil, nil
	}
	if resp.Status == http.StatusUnauthorized {
		return nil, apperrors.E(apperrors.KindUnauthorized, "backend session expired")
	}
	return taskmate.Teams(resp), nil
}

func (c *Cache) enabled() bool {
	return c != nil && c.store != nil && c.ttl > 0
}

func (c *Cache) cached(ctx context.Context, userID string) ([]taskmate.Team, bool) {
	userID = strings.TrimSpace(userID)
	if !c.enabled() || userID == "" {
		return nil, false
	}
	key := adminTeamsKey(userID)
	entry, ok, err := c.store.GetCacheEntry(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	if !entry.Fresh(c.now()) {
		_ = c.store.DeleteCacheEntry(ctx, key)
		return nil, false
	}
	var teams []taskmate.Team
	if err := json.Unmarshal(entry.PayloadBytes, &teams); err != nil {
		_ = c.store.DeleteCacheEntry(ctx, key)
		return nil, false
	}
	return teams, true
}

func (c *Cache) put(ctx context.Context, userID string, teams []taskmate.Team) {
	userID = strings.TrimSpace(userID)
	if !c.enabled() || userID == "" {
		return
	}
	if teams == nil {
		teams = []taskmate.Team{}
	}
	payload, err := json.Marshal(teams)
	if err != nil {
		return
	}
	now := c.now().UTC()
	if err := c.store.PutCacheEntry(ctx, webstorage.CacheEntry{
		CacheKey:     adminTeamsKey(userID),
		Scope:        scopeAdminTeams,
		UserID:       userID,
		PayloadBytes: payload,
		RefreshedAt:  now,
		ExpiresAt:    now.Add(c.ttl),
	}); err != nil {
		logging.FromContext(ctx).Warn("cache admin teams", zap.String("user_id", userID), zap.Error(err))
	}
}
