package templates

import (
	"net/http"

	"github.com/a-h/templ"
)

type errorState struct {
	Status   int
	TitleKey string
	BodyKey  string
	HomeURL  string
}

// ErrorPageTitle returns the browser page title for error pages.
func ErrorPageTitle(statusCode int, loc Localizer) string {
	return T(loc, errorStateFor(statusCode, "").TitleKey)
}

// ErrorState renders the error card for statusCode with a link back to home.
func ErrorState(statusCode int, homeURL string, loc Localizer) templ.Component {
	return View("error_state", loc, errorStateFor(statusCode, homeURL))
}

func errorStateFor(statusCode int, homeURL string) errorState {
	if homeURL == "" {
		homeURL = "/"
	}
	switch statusCode {
	case http.StatusNotFound:
		return errorState{Status: statusCode, TitleKey: "core.error.not_found_title", BodyKey: "core.error.not_found_body", HomeURL: homeURL}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return errorState{Status: statusCode, TitleKey: "core.error.unavailable_title", BodyKey: "core.error.unavailable_body", HomeURL: homeURL}
	default:
		return errorState{Status: http.StatusInternalServerError, TitleKey: "core.error.server_title", BodyKey: "core.error.server_body", HomeURL: homeURL}
	}
}
