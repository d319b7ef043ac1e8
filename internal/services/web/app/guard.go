package app

import (
	"net/http"

	"github.com/taskmate/taskmate-web/internal/platform/logging"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/requestmeta"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	"go.uber.org/zap"
)

// protectedGuard fronts every /app/ module.
type protectedGuard struct {
	authenticated func(*http.Request) bool
	policy        requestmeta.SchemePolicy
}

// wrap sends anonymous requests to sign in, refuses cookie-authenticated
// mutations without same-origin proof and marks private pages uncacheable.
func (g protectedGuard) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.authenticated(r) {
			httpx.WriteRedirect(w, r, routepath.Login)
			return
		}
		if isMutation(r.Method) && hasSessionCookie(r) && !g.policy.SameOrigin(r) {
			logging.FromContext(r.Context()).Warn("cross-origin mutation rejected",
				zap.String("path", r.URL.Path),
				zap.String("origin", r.Header.Get("Origin")),
			)
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := cookies.ReadSession(r)
	return ok
}
