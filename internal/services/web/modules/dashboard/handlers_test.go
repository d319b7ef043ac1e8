package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/modulehandler"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
)

func newTestMux(source *fakeTeamSource) *http.ServeMux {
	s := webstorage.Session{ID: "s1", User: taskmate.User{ID: "u1", Name: "Ada Lovelace"}, Credentials: "token=abc"}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{Base: modulehandler.NewTestBase(s), service: newService(source)})
	return mux
}

func TestDashboardGreetsUserAndListsTeams(t *testing.T) {
	t.Parallel()

	source := &fakeTeamSource{teams: teams(2)}
	rr := httptest.NewRecorder()
	newTestMux(source).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.AppDashboard, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"Welcome back, Ada Lovelace", "Team a", "key-b"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q: %q", want, body)
		}
	}
	if got := source.creds.Header(); got != "token=abc" {
		t.Fatalf("creds header = %q, want token=abc", got)
	}
}

func TestDashboardShowsEmptyState(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newTestMux(&fakeTeamSource{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.AppDashboard, nil))

	if !strings.Contains(rr.Body.String(), "You have not created any teams yet.") {
		t.Fatalf("body missing empty state: %q", rr.Body.String())
	}
}

func TestDashboardRendersUnavailableNotice(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	source := &fakeTeamSource{err: apperrors.E(apperrors.KindUnavailable, "down")}
	newTestMux(source).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.AppDashboard, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), "alert-error") {
		t.Fatalf("body missing unavailable notice: %q", rr.Body.String())
	}
}

func TestDashboardRedirectsToLoginWhenBackendSessionExpired(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	source := &fakeTeamSource{err: apperrors.E(apperrors.KindUnauthorized, "expired")}
	newTestMux(source).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.AppDashboard, nil))

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != routepath.Login {
		t.Fatalf("Location = %q, want %q", got, routepath.Login)
	}
}

func TestDashboardHTMXRequestRendersFragmentOnly(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, routepath.AppDashboard, nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	newTestMux(&fakeTeamSource{}).ServeHTTP(rr, req)

	body := rr.Body.String()
	if strings.Contains(strings.ToLower(body), "<html") {
		t.Fatalf("HTMX response rendered full document: %q", body)
	}
	if !strings.Contains(body, "Welcome back") {
		t.Fatalf("fragment missing greeting: %q", body)
	}
}

func TestDashboardRefreshInvalidatesTeamCache(t *testing.T) {
	t.Parallel()

	source := &fakeTeamSource{}
	rr := httptest.NewRecorder()
	newTestMux(source).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, routepath.DashboardRefresh, nil))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.AppDashboard {
		t.Fatalf("Location = %q, want %q", got, routepath.AppDashboard)
	}
	if len(source.invalidated) != 1 || source.invalidated[0] != "u1" {
		t.Fatalf("invalidated = %v, want [u1]", source.invalidated)
	}
}
