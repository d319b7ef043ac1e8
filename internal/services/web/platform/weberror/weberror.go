// Package weberror renders shared error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	webi18n "github.com/taskmate/taskmate-web/internal/services/web/platform/i18n"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/pagerender"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"
)

// ShouldRenderErrorPage reports whether status uses the error-page UX.
func ShouldRenderErrorPage(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if text, ok := apperrors.PublicMessage(err); ok {
		return text
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteAppError writes an error page inside the app shell.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	writeErrorPage(w, r, statusCode, deps, routepath.AppDashboard, pagerender.WriteAppPage)
}

// WritePublicError writes an error page inside the public layout.
func WritePublicError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	writeErrorPage(w, r, statusCode, deps, routepath.Root, pagerender.WritePublicPage)
}

type pageWriter func(http.ResponseWriter, *http.Request, module.Dependencies, pagerender.Page) error

func writeErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies, homeURL string, write pageWriter) {
	if w == nil {
		return
	}
	if !ShouldRenderErrorPage(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc, lang := webi18n.ResolveLocalizer(w, r, deps.Cookies)
	err := write(w, r, deps, pagerender.Page{
		Title:      webtemplates.ErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Fragment:   webtemplates.ErrorState(statusCode, homeURL, loc),
		Localizer:  loc,
		Lang:       lang,
	})
	if err != nil {
		http.Error(w, PublicMessage(loc, err), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response. Backend
// authorization failures end the local session and send the viewer back to
// sign in.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode == http.StatusUnauthorized {
		if deps.EndSession != nil {
			deps.EndSession(w, r)
		} else {
			deps.Cookies.ClearSession(w, r)
		}
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}
	if ShouldRenderErrorPage(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(w, r, deps.Cookies)
	http.Error(w, PublicMessage(loc, err), statusCode)
}
