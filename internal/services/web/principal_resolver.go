package web

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/taskmate/taskmate-web/internal/platform/logging"
	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	"github.com/taskmate/taskmate-web/internal/services/web/session"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"go.uber.org/zap"
)

// requestPrincipalState memoizes the session lookup for one request so the
// auth gate, the layout and the handler share a single store read.
type requestPrincipalState struct {
	sessionOnce sync.Once
	session     webstorage.Session
	found       bool
	viewerOnce  sync.Once
	viewer      module.Viewer
}

type requestPrincipalStateKey struct{}

type principalResolver struct {
	sessions *session.Manager
}

func newPrincipalResolver(sessions *session.Manager) principalResolver {
	return principalResolver{sessions: sessions}
}

func (r principalResolver) resolveSessionUncached(request *http.Request) (webstorage.Session, bool) {
	if request == nil {
		return webstorage.Session{}, false
	}
	sessionID, ok := cookies.ReadSession(request)
	if !ok {
		return webstorage.Session{}, false
	}
	record, found, err := r.sessions.Resolve(request.Context(), sessionID)
	if err != nil {
		logging.FromContext(request.Context()).Warn("resolve session", zap.Error(err))
		return webstorage.Session{}, false
	}
	if !found || (strings.TrimSpace(record.User.ID) == "" && strings.TrimSpace(record.User.Email) == "") {
		return webstorage.Session{}, false
	}
	return record, true
}

func (r principalResolver) resolveSession(request *http.Request) (webstorage.Session, bool) {
	if state := requestPrincipalStateFromRequest(request); state != nil {
		state.sessionOnce.Do(func() {
			state.session, state.found = r.resolveSessionUncached(request)
		})
		return state.session, state.found
	}
	return r.resolveSessionUncached(request)
}

func (r principalResolver) resolveViewerUncached(request *http.Request) module.Viewer {
	record, ok := r.resolveSession(request)
	if !ok {
		return module.Viewer{}
	}
	return viewerFromUser(record)
}

func viewerFromUser(record webstorage.Session) module.Viewer {
	user := record.User
	displayName := strings.TrimSpace(user.Name)
	if displayName == "" {
		displayName = strings.TrimSpace(user.Email)
	}
	return module.Viewer{
		SignedIn:    true,
		UserID:      strings.TrimSpace(user.ID),
		DisplayName: displayName,
		Email:       strings.TrimSpace(user.Email),
		Initials:    user.Initials(),
		AvatarURL:   strings.TrimSpace(user.Avatar),
	}
}

func (r principalResolver) resolveViewer(request *http.Request) module.Viewer {
	if state := requestPrincipalStateFromRequest(request); state != nil {
		state.viewerOnce.Do(func() {
			state.viewer = r.resolveViewerUncached(request)
		})
		return state.viewer
	}
	return r.resolveViewerUncached(request)
}

// endSession destroys the stored session named by the request cookie and
// expires the cookie.
func (r principalResolver) endSession(jar cookies.Jar) module.EndSession {
	return func(w http.ResponseWriter, request *http.Request) {
		if request == nil {
			return
		}
		if sessionID, ok := cookies.ReadSession(request); ok {
			if err := r.sessions.Destroy(request.Context(), sessionID); err != nil {
				logging.FromContext(request.Context()).Warn("destroy session", zap.Error(err))
			}
		}
		jar.ClearSession(w, request)
	}
}

func (r principalResolver) authRequired() func(*http.Request) bool {
	return func(request *http.Request) bool {
		_, ok := r.resolveSession(request)
		return ok
	}
}

func withRequestPrincipalState() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil {
				next.ServeHTTP(w, r)
				return
			}
			state := &requestPrincipalState{}
			ctx := context.WithValue(r.Context(), requestPrincipalStateKey{}, state)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestPrincipalStateFromRequest(r *http.Request) *requestPrincipalState {
	if r == nil {
		return nil
	}
	state, _ := r.Context().Value(requestPrincipalStateKey{}).(*requestPrincipalState)
	return state
}
