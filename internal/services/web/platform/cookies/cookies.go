// Package cookies writes the web cookies with one consistent attribute set.
package cookies

import (
	"net/http"
	"strings"
	"time"

	"github.com/taskmate/taskmate-web/internal/services/web/platform/requestmeta"
)

const (
	// SessionName holds the opaque server-side session id.
	SessionName = "taskmate_session"
	// FlashName holds the one-shot notice for the next render.
	FlashName = "taskmate_flash"
	// ThemeName holds the persisted color theme.
	ThemeName = "taskmate_theme"
	// LangName holds the persisted UI language.
	LangName = "taskmate_lang"
)

const preferenceMaxAge = 365 * 24 * time.Hour

// Jar sets and clears cookies. Secure is derived from the request scheme.
type Jar struct {
	Policy requestmeta.SchemePolicy
}

// Read returns the trimmed value of cookie name when present and non-empty.
func Read(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

// Set writes an HttpOnly cookie. A zero expires makes it a browser-session
// cookie.
func (j Jar) Set(w http.ResponseWriter, r *http.Request, name, value string, expires time.Time) {
	j.write(w, r, &http.Cookie{Name: name, Value: value, Expires: expires, HttpOnly: true})
}

// SetPreference writes a long-lived cookie that client scripts may read.
func (j Jar) SetPreference(w http.ResponseWriter, r *http.Request, name, value string) {
	j.write(w, r, &http.Cookie{Name: name, Value: value, MaxAge: int(preferenceMaxAge.Seconds())})
}

// Clear expires cookie name.
func (j Jar) Clear(w http.ResponseWriter, r *http.Request, name string) {
	j.write(w, r, &http.Cookie{Name: name, MaxAge: -1, HttpOnly: true})
}

// WriteSession stores the session id until expires.
func (j Jar) WriteSession(w http.ResponseWriter, r *http.Request, sessionID string, expires time.Time) {
	j.Set(w, r, SessionName, strings.TrimSpace(sessionID), expires)
}

// ReadSession returns the session id carried by r.
func ReadSession(r *http.Request) (string, bool) {
	return Read(r, SessionName)
}

// ClearSession expires the session cookie.
func (j Jar) ClearSession(w http.ResponseWriter, r *http.Request) {
	j.Clear(w, r, SessionName)
}

func (j Jar) write(w http.ResponseWriter, r *http.Request, cookie *http.Cookie) {
	if w == nil || cookie == nil {
		return
	}
	cookie.Path = "/"
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = j.Policy.IsHTTPS(r)
	http.SetCookie(w, cookie)
}
