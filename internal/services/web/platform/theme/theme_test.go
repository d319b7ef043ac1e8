package theme

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
)

func TestResolveDefaultsToDark(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := Resolve(req); got != Dark {
		t.Fatalf("Resolve() = %q, want %q", got, Dark)
	}
	req.AddCookie(&http.Cookie{Name: cookies.ThemeName, Value: "LIGHT"})
	if got := Resolve(req); got != Light {
		t.Fatalf("Resolve(light cookie) = %q, want %q", got, Light)
	}
}

func TestToggleFlipsAndPersists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cookie string
		want   string
	}{
		{"", Light},
		{Dark, Light},
		{Light, Dark},
	}
	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodPost, "/theme", nil)
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: cookies.ThemeName, Value: tc.cookie})
		}
		rr := httptest.NewRecorder()
		if got := Toggle(rr, req, cookies.Jar{}); got != tc.want {
			t.Fatalf("Toggle(%q) = %q, want %q", tc.cookie, got, tc.want)
		}
		set := rr.Result().Cookies()
		if len(set) != 1 || set[0].Name != cookies.ThemeName || set[0].Value != tc.want {
			t.Fatalf("cookies = %+v", set)
		}
	}
}
