package teams

import (
	"context"
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

func TestLoadListingMarksAdministeredTeams(t *testing.T) {
	t.Parallel()

	lists := &fakeLists{admin: []taskmate.Team{alphaTeam}, member: []taskmate.Team{betaTeam}}
	got, err := newService(nil, lists).loadListing(context.Background(), "u1", taskmate.Credentials{})
	if err != nil {
		t.Fatalf("loadListing() error = %v", err)
	}
	if !got.manages("alpha-1") {
		t.Fatal("manages(alpha-1) = false, want true")
	}
	if got.manages("beta-2") {
		t.Fatal("manages(beta-2) = true, want false")
	}
	if len(got.Member) != 1 {
		t.Fatalf("len(Member) = %d, want 1", len(got.Member))
	}
}

func TestLoadListingDegradesOnUnavailableList(t *testing.T) {
	t.Parallel()

	lists := &fakeLists{adminErr: apperrors.E(apperrors.KindUnavailable, "down"), member: []taskmate.Team{betaTeam}}
	got, err := newService(nil, lists).loadListing(context.Background(), "u1", taskmate.Credentials{})
	if err != nil {
		t.Fatalf("loadListing() error = %v", err)
	}
	if len(got.Admin) != 0 || len(got.Member) != 1 {
		t.Fatalf("listing = %+v, want only member teams", got)
	}
	if !got.Incomplete {
		t.Fatal("Incomplete = false, want true after a failed list")
	}

	got, err = newService(nil, &fakeLists{member: []taskmate.Team{betaTeam}}).loadListing(context.Background(), "u1", taskmate.Credentials{})
	if err != nil || got.Incomplete {
		t.Fatalf("loadListing() = %+v, %v, want complete listing", got, err)
	}
}

func TestLoadListingReturnsUnauthorized(t *testing.T) {
	t.Parallel()

	lists := &fakeLists{memberErr: apperrors.E(apperrors.KindUnauthorized, "expired")}
	_, err := newService(nil, lists).loadListing(context.Background(), "u1", taskmate.Credentials{})
	if apperrors.KindOf(err) != apperrors.KindUnauthorized {
		t.Fatalf("KindOf(err) = %q, want %q", apperrors.KindOf(err), apperrors.KindUnauthorized)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		key         string
		resp        *taskmate.Response
		err         error
		wantTeam    bool
		wantMessage string
		wantCalls   int
	}{
		{name: "blank key skipped", key: "   ", wantCalls: 0},
		{name: "found", key: "alpha-1", resp: reply(http.StatusOK, "Team found", alphaTeam), wantTeam: true, wantCalls: 1},
		{name: "no data", key: "nope", resp: reply(http.StatusOK, "Team not found", nil), wantMessage: "app.teams.search_not_found", wantCalls: 1},
		{name: "rejected", key: "nope", resp: reply(http.StatusNotFound, "Team not found", nil), wantMessage: "app.teams.search_not_found", wantCalls: 1},
		{name: "network", key: "alpha-1", err: errors.New("dial"), wantMessage: "app.teams.search_not_found", wantCalls: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gateway := &fakeGateway{searchResp: tc.resp, searchErr: tc.err}
			got := newService(gateway, &fakeLists{}).search(context.Background(), taskmate.Credentials{}, tc.key)
			if gateway.searches != tc.wantCalls {
				t.Fatalf("searches = %d, want %d", gateway.searches, tc.wantCalls)
			}
			if (got.Team != nil) != tc.wantTeam {
				t.Fatalf("Team = %+v, want present=%v", got.Team, tc.wantTeam)
			}
			if got.MessageKey != tc.wantMessage {
				t.Fatalf("MessageKey = %q, want %q", got.MessageKey, tc.wantMessage)
			}
		})
	}
}

func TestCreateTeamInvalidatesCacheOnSuccess(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{createResp: reply(http.StatusCreated, "Team created", alphaTeam)}
	lists := &fakeLists{}
	if err := newService(gateway, lists).createTeam(context.Background(), "u1", taskmate.Credentials{}, " Alpha ", " First "); err != nil {
		t.Fatalf("createTeam() error = %v", err)
	}
	if gateway.created != [2]string{"Alpha", "First"} {
		t.Fatalf("created = %v, want trimmed values", gateway.created)
	}
	if len(lists.invalidated) != 1 || lists.invalidated[0] != "u1" {
		t.Fatalf("invalidated = %v, want [u1]", lists.invalidated)
	}
}

func TestMutationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		resp       *taskmate.Response
		err        error
		wantKind   apperrors.Kind
		wantPublic string
	}{
		{name: "network", err: errors.New("dial"), wantKind: apperrors.KindUnavailable},
		{name: "expired", resp: reply(http.StatusUnauthorized, "Unauthorized", nil), wantKind: apperrors.KindUnauthorized},
		{name: "rejected with message", resp: reply(http.StatusConflict, "Team name taken", nil), wantKind: apperrors.KindInvalidInput, wantPublic: "Team name taken"},
		{name: "rejected without message", resp: reply(http.StatusBadRequest, "", nil), wantKind: apperrors.KindInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gateway := &fakeGateway{deleteResp: tc.resp, deleteErr: tc.err}
			lists := &fakeLists{}
			err := newService(gateway, lists).deleteTeam(context.Background(), "u1", taskmate.Credentials{}, "alpha-1")
			if apperrors.KindOf(err) != tc.wantKind {
				t.Fatalf("KindOf(err) = %q, want %q", apperrors.KindOf(err), tc.wantKind)
			}
			text, _ := apperrors.PublicMessage(err)
			if text != tc.wantPublic {
				t.Fatalf("PublicMessage = %q, want %q", text, tc.wantPublic)
			}
			if len(lists.invalidated) != 0 {
				t.Fatalf("invalidated = %v, want none", lists.invalidated)
			}
		})
	}
}

func TestAdminTeamRequiresAdministeredKey(t *testing.T) {
	t.Parallel()

	svc := newService(nil, &fakeLists{admin: []taskmate.Team{alphaTeam}})
	team, err := svc.adminTeam(context.Background(), "u1", taskmate.Credentials{}, "alpha-1")
	if err != nil || team.TeamName != "Alpha" {
		t.Fatalf("adminTeam() = %+v, %v", team, err)
	}
	_, err = svc.adminTeam(context.Background(), "u1", taskmate.Credentials{}, "beta-2")
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Fatalf("KindOf(err) = %q, want %q", apperrors.KindOf(err), apperrors.KindNotFound)
	}
}
