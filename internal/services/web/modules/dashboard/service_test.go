package dashboard

import (
	"context"
	"testing"

	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

func TestLoadOverviewKeepsFiveMostRecentTeams(t *testing.T) {
	t.Parallel()

	source := &fakeTeamSource{teams: teams(7)}
	creds, _ := taskmate.ParseCredentials("token=abc")
	got, err := newService(source).loadOverview(context.Background(), taskmate.User{ID: "u1", Name: "Ada"}, creds)
	if err != nil {
		t.Fatalf("loadOverview() error = %v", err)
	}
	if got.Name != "Ada" {
		t.Fatalf("Name = %q, want %q", got.Name, "Ada")
	}
	if got.TotalTeams != 7 {
		t.Fatalf("TotalTeams = %d, want 7", got.TotalTeams)
	}
	if len(got.RecentTeams) != recentTeamLimit {
		t.Fatalf("len(RecentTeams) = %d, want %d", len(got.RecentTeams), recentTeamLimit)
	}
	if got.RecentTeams[0].TeamKey != "key-a" {
		t.Fatalf("RecentTeams[0] = %q, want key-a", got.RecentTeams[0].TeamKey)
	}
	if source.userID != "u1" {
		t.Fatalf("userID = %q, want u1", source.userID)
	}
	if got := source.creds.Header(); got != "token=abc" {
		t.Fatalf("creds header = %q, want token=abc", got)
	}
}

func TestLoadOverviewFallsBackToGenericName(t *testing.T) {
	t.Parallel()

	got, err := newService(&fakeTeamSource{}).loadOverview(context.Background(), taskmate.User{Name: "  "}, taskmate.Credentials{})
	if err != nil {
		t.Fatalf("loadOverview() error = %v", err)
	}
	if got.Name != "User" {
		t.Fatalf("Name = %q, want User", got.Name)
	}
	if got.TotalTeams != 0 || got.Unavailable {
		t.Fatalf("overview = %+v, want empty and available", got)
	}
}

func TestLoadOverviewMarksUnavailableOnBackendFailure(t *testing.T) {
	t.Parallel()

	source := &fakeTeamSource{err: apperrors.E(apperrors.KindUnavailable, "down")}
	got, err := newService(source).loadOverview(context.Background(), taskmate.User{Name: "Ada"}, taskmate.Credentials{})
	if err != nil {
		t.Fatalf("loadOverview() error = %v", err)
	}
	if !got.Unavailable {
		t.Fatal("Unavailable = false, want true")
	}
}

func TestLoadOverviewReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	source := &fakeTeamSource{err: apperrors.E(apperrors.KindUnauthorized, "expired")}
	_, err := newService(source).loadOverview(context.Background(), taskmate.User{Name: "Ada"}, taskmate.Credentials{})
	if apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("KindOf(err) = %q, want %q", apperrors.KindOf(err), apperrors.KindUnauthorized)
	}
}

func TestNewServiceWithoutSourceIsUnavailable(t *testing.T) {
	t.Parallel()

	got, err := newService(nil).loadOverview(context.Background(), taskmate.User{}, taskmate.Credentials{})
	if err != nil {
		t.Fatalf("loadOverview() error = %v", err)
	}
	if !got.Unavailable {
		t.Fatal("Unavailable = false, want true")
	}
}
