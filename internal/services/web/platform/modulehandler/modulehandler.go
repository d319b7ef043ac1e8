// Package modulehandler provides a composable base for protected web module
// handlers.
//
// Protected modules (those mounted under /app/) share session resolution,
// localization, page rendering, and error handling. Modules embed Base rather
// than duplicating that scaffold.
package modulehandler

import (
	"net/http"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	flashnotice "github.com/taskmate/taskmate-web/internal/services/web/platform/flash"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	webi18n "github.com/taskmate/taskmate-web/internal/services/web/platform/i18n"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/pagerender"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/weberror"
	"github.com/taskmate/taskmate-web/internal/services/web/session"
	webstorage "github.com/taskmate/taskmate-web/internal/services/web/storage"
	"github.com/taskmate/taskmate-web/internal/taskmate"
	"golang.org/x/text/language"
)

// Base carries the shared request-scoped resolvers used by protected module
// handlers.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// NewTestBase builds a handler base whose every request carries session.
func NewTestBase(s webstorage.Session) Base {
	return Base{deps: module.Dependencies{
		ResolveSession: func(*http.Request) (webstorage.Session, bool) { return s, s.ID != "" },
		ResolveViewer: func(*http.Request) module.Viewer {
			return module.Viewer{SignedIn: s.ID != "", UserID: s.User.ID, DisplayName: s.User.Name, Email: s.User.Email, Initials: s.User.Initials()}
		},
	}}
}

// Dependencies returns the module dependencies backing b.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// ResolveRequestViewer resolves chrome viewer state for a request.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	if b.deps.ResolveViewer == nil {
		return module.Viewer{}
	}
	return b.deps.ResolveViewer(r)
}

// RequestSession returns the live session for the request.
func (b Base) RequestSession(r *http.Request) (webstorage.Session, bool) {
	if r == nil || b.deps.ResolveSession == nil {
		return webstorage.Session{}, false
	}
	return b.deps.ResolveSession(r)
}

// RequestCredentials returns the backend credentials of the request session.
func (b Base) RequestCredentials(r *http.Request) taskmate.Credentials {
	s, ok := b.RequestSession(r)
	if !ok {
		return taskmate.Credentials{}
	}
	return session.Credentials(s)
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webi18n.Localizer, language.Tag) {
	return webi18n.ResolveLocalizer(w, r, b.deps.Cookies)
}

// WritePage renders an app page (HTMX-aware).
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WriteAppPage(w, r, b.deps, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.deps)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.deps)
}

// RedirectWithNotice stores notice for the next render and redirects.
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, notice flashnotice.Notice) {
	flashnotice.Write(w, r, b.deps.Cookies, notice)
	httpx.WriteRedirect(w, r, location)
}
