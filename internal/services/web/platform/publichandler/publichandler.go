// Package publichandler provides a shared base for unauthenticated web module
// handlers.
package publichandler

import (
	"net/http"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	flashnotice "github.com/taskmate/taskmate-web/internal/services/web/platform/flash"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	webi18n "github.com/taskmate/taskmate-web/internal/services/web/platform/i18n"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/pagerender"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/weberror"
	"golang.org/x/text/language"
)

// Base provides shared error handling and page rendering for public modules.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a public handler base.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// Dependencies returns the module dependencies backing b.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// IsViewerSignedIn reports whether the current request is authenticated.
func (b Base) IsViewerSignedIn(r *http.Request) bool {
	if b.deps.ResolveViewer == nil {
		return false
	}
	return b.deps.ResolveViewer(r).SignedIn
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webi18n.Localizer, language.Tag) {
	return webi18n.ResolveLocalizer(w, r, b.deps.Cookies)
}

// WritePublicPage renders a full public page.
func (b Base) WritePublicPage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.WritePublicPage(w, r, b.deps, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// WriteNotFound renders a localized 404 page using the public layout.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WritePublicError(w, r, http.StatusNotFound, b.deps)
}

// WriteError renders a user-safe error response: error pages for not-found
// and server errors, plain-text status messages for everything else.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if weberror.ShouldRenderErrorPage(statusCode) {
		weberror.WritePublicError(w, r, statusCode, b.deps)
		return
	}
	loc, _ := b.PageLocalizer(w, r)
	http.Error(w, weberror.PublicMessage(loc, err), statusCode)
}

// RedirectWithNotice stores notice for the next render and redirects.
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, notice flashnotice.Notice) {
	flashnotice.Write(w, r, b.deps.Cookies, notice)
	httpx.WriteRedirect(w, r, location)
}
