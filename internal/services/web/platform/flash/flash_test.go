package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
)

func requestWithCookies(rr *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/app/teams/", nil)
	for _, cookie := range rr.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func TestWriteAndReadAndClearRoundTrip(t *testing.T) {
	t.Parallel()

	write := httptest.NewRecorder()
	Write(write, httptest.NewRequest(http.MethodPost, "/app/teams/", nil), cookies.Jar{}, Error("app.teams.create_failed", "Team key already taken"))

	read := httptest.NewRecorder()
	notice, ok := ReadAndClear(read, requestWithCookies(write), cookies.Jar{})
	if !ok {
		t.Fatal("ReadAndClear() ok = false, want true")
	}
	if notice.Kind != KindError || notice.Key != "app.teams.create_failed" || notice.Text != "Team key already taken" {
		t.Fatalf("notice = %+v", notice)
	}
	cleared := read.Result().Cookies()
	if len(cleared) != 1 || cleared[0].Name != cookies.FlashName || cleared[0].MaxAge >= 0 {
		t.Fatalf("clear cookies = %+v", cleared)
	}
}

func TestReadAndClearInvalidCookieValueStillClears(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookies.FlashName, Value: "%%%"})
	rr := httptest.NewRecorder()
	if _, ok := ReadAndClear(rr, req, cookies.Jar{}); ok {
		t.Fatal("ReadAndClear() ok = true for invalid cookie")
	}
	if len(rr.Result().Cookies()) != 1 {
		t.Fatal("expected invalid flash cookie to be cleared")
	}
}

func TestWriteIgnoresInvalidNotice(t *testing.T) {
	t.Parallel()

	tests := []Notice{
		{Kind: KindSuccess},
		{Kind: KindError, Key: "  ", Text: " "},
		{Kind: "shout", Key: "core.brand"},
	}
	for _, notice := range tests {
		rr := httptest.NewRecorder()
		Write(rr, httptest.NewRequest(http.MethodGet, "/", nil), cookies.Jar{}, notice)
		if len(rr.Result().Cookies()) != 0 {
			t.Fatalf("Write(%+v) set a cookie, want none", notice)
		}
	}
}

func TestWriteSetsShortLivedCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodPost, "/app/profile/", nil), cookies.Jar{}, Success("app.profile.saved"))
	set := rr.Result().Cookies()
	if len(set) != 1 {
		t.Fatalf("cookies = %+v, want one", set)
	}
	if set[0].Expires.IsZero() || time.Until(set[0].Expires) > lifetime {
		t.Fatalf("Expires = %v, want within %v", set[0].Expires, lifetime)
	}
}

func TestCleanClipsTextOnRuneBoundary(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("a", maxTextLength-1) + "çã"
	notice, ok := Notice{Kind: "ERROR", Text: text}.clean()
	if !ok {
		t.Fatal("clean() ok = false")
	}
	if notice.Kind != KindError {
		t.Fatalf("Kind = %q, want %q", notice.Kind, KindError)
	}
	if len(notice.Text) != maxTextLength-1 || !utf8.ValidString(notice.Text) {
		t.Fatalf("Text len = %d valid = %v", len(notice.Text), utf8.ValidString(notice.Text))
	}
}
