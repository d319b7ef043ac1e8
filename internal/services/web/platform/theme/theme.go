// Package theme resolves and toggles the dark/light color scheme cookie.
package theme

import (
	"net/http"
	"strings"

	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
)

const (
	Dark  = "dark"
	Light = "light"
)

// Resolve returns the request theme. Anything other than light is dark.
func Resolve(r *http.Request) string {
	value, ok := cookies.Read(r, cookies.ThemeName)
	if ok && strings.EqualFold(strings.TrimSpace(value), Light) {
		return Light
	}
	return Dark
}

// Toggle flips the request theme, stores it and returns the new value.
func Toggle(w http.ResponseWriter, r *http.Request, jar cookies.Jar) string {
	next := Light
	if Resolve(r) == Light {
		next = Dark
	}
	jar.SetPreference(w, r, cookies.ThemeName, next)
	return next
}
