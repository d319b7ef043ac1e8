package teamcache

import (
	"context"
	"net/http"
	"testing"
	"time"

	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

func TestAdminTeamsServedFromCacheUntilExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	source := &fakeSource{adminResp: teamsResponse(http.StatusOK, []taskmate.Team{{TeamKey: "k1", TeamName: "Core"}})}
	store := newMemoryCache()
	cache := New(source, store, 30*time.Second, WithClock(func() time.Time { return now }))

	for i := 0; i < 2; i++ {
		teams, err := cache.AdminTeams(context.Background(), "u-1", taskmate.Credentials{})
		if err != nil {
			t.Fatalf("AdminTeams() error = %v", err)
		}
		if len(teams) != 1 || teams[0].TeamKey != "k1" {
			t.Fatalf("teams = %+v", teams)
		}
	}
	if source.adminCalls != 1 {
		t.Fatalf("backend calls = %d, want 1", source.adminCalls)
	}

	now = now.Add(31 * time.Second)
	if _, err := cache.AdminTeams(context.Background(), "u-1", taskmate.Credentials{}); err != nil {
		t.Fatalf("AdminTeams() error = %v", err)
	}
	if source.adminCalls != 2 {
		t.Fatalf("backend calls after expiry = %d, want 2", source.adminCalls)
	}
}

func TestInvalidateDropsUserEntries(t *testing.T) {
	t.Parallel()

	source := &fakeSource{adminResp: teamsResponse(http.StatusOK, nil)}
	store := newMemoryCache()
	cache := New(source, store, time.Minute)

	if _, err := cache.AdminTeams(context.Background(), "u-1", taskmate.Credentials{}); err != nil {
		t.Fatalf("AdminTeams() error = %v", err)
	}
	if store.len() != 1 {
		t.Fatalf("cache entries = %d, want 1", store.len())
	}
	cache.Invalidate(context.Background(), "u-1")
	if store.len() != 0 {
		t.Fatalf("cache entries after invalidate = %d, want 0", store.len())
	}
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	t.Parallel()

	source := &fakeSource{adminResp: teamsResponse(http.StatusOK, nil)}
	store := newMemoryCache()
	cache := New(source, store, 0)

	for i := 0; i < 2; i++ {
		if _, err := cache.AdminTeams(context.Background(), "u-1", taskmate.Credentials{}); err != nil {
			t.Fatalf("AdminTeams() error = %v", err)
		}
	}
	if source.adminCalls != 2 || store.len() != 0 {
		t.Fatalf("calls = %d, entries = %d, want 2 and 0", source.adminCalls, store.len())
	}
}

func TestFailedListIsEmptyAndNotCached(t *testing.T) {
	t.Parallel()

	source := &fakeSource{adminResp: teamsResponse(http.StatusInternalServerError, nil)}
	store := newMemoryCache()
	cache := New(source, store, time.Minute)

	teams, err := cache.AdminTeams(context.Background(), "u-1", taskmate.Credentials{})
	if err != nil || len(teams) != 0 {
		t.Fatalf("AdminTeams() = %v, %v, want empty", teams, err)
	}
	if store.len() != 0 {
		t.Fatalf("cache entries = %d, want 0", store.len())
	}
}

func TestListErrorsMapToKinds(t *testing.T) {
	t.Parallel()

	unauthorized := New(&fakeSource{adminResp: teamsResponse(http.StatusUnauthorized, nil)}, nil, 0)
	_, err := unauthorized.AdminTeams(context.Background(), "u-1", taskmate.Credentials{})
	if got := apperrors.KindOf(err); got != apperrors.KindUnauthorized {
		t.Fatalf("KindOf(401) = %q, want unauthorized", got)
	}

	offline := New(&fakeSource{err: taskmate.ErrNetwork}, nil, 0)
	_, err = offline.MemberTeams(context.Background(), taskmate.Credentials{})
	if got := apperrors.KindOf(err); got != apperrors.KindUnavailable {
		t.Fatalf("KindOf(network) = %q, want unavailable", got)
	}

	var missing *Cache
	if _, err := missing.AdminTeams(context.Background(), "u-1", taskmate.Credentials{}); apperrors.KindOf(err) != apperrors.KindUnavailable {
		t.Fatalf("nil cache error = %v, want unavailable", err)
	}
}
