package static

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerServesAssetsWithCacheHeader(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Handler("/static/").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("Cache-Control"); got != cacheControl {
		t.Fatalf("Cache-Control = %q, want %q", got, cacheControl)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/css") {
		t.Fatalf("Content-Type = %q, want text/css", rr.Header().Get("Content-Type"))
	}
}

func TestHandlerRejectsDirectoryListing(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/static/", "/static/missing.js"} {
		rr := httptest.NewRecorder()
		Handler("/static/").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusNotFound)
		}
	}
}
