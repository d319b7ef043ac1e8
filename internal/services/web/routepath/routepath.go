// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                 = "/"
	Login                = "/login"
	Signup               = "/signup"
	Logout               = "/logout"
	Theme                = "/theme"
	Health               = "/up"
	StaticPrefix         = "/static/"
	ForgotPasswordPrefix = "/forgot-password/"
	ForgotPasswordOTP    = ForgotPasswordPrefix + "otp"
	ForgotPasswordVerify = ForgotPasswordPrefix + "verify"
	ForgotPasswordReset  = ForgotPasswordPrefix + "reset"
	AppPrefix            = "/app/"
	AppDashboard         = "/app/dashboard"
	DashboardPrefix      = "/app/dashboard/"
	DashboardRefresh     = DashboardPrefix + "refresh"
	AppTeams             = "/app/teams"
	TeamsPrefix          = "/app/teams/"
	TeamsCreate          = TeamsPrefix + "create"
	TeamEditPattern      = TeamsPrefix + "{teamKey}/edit"
	TeamDeletePattern    = TeamsPrefix + "{teamKey}/delete"
	TeamsSearchParam     = "key"
	AppProfile           = "/app/profile"
	ProfilePrefix        = "/app/profile/"
	ProfileAvatar        = ProfilePrefix + "avatar"
	ProfilePassword      = ProfilePrefix + "password"
)

// TeamEdit returns the edit route for one team.
func TeamEdit(teamKey string) string {
	return TeamsPrefix + escapeSegment(teamKey) + "/edit"
}

// TeamDelete returns the delete route for one team.
func TeamDelete(teamKey string) string {
	return TeamsPrefix + escapeSegment(teamKey) + "/delete"
}

// TeamsSearch returns the teams page filtered by a team key.
func TeamsSearch(teamKey string) string {
	teamKey = strings.TrimSpace(teamKey)
	if teamKey == "" {
		return TeamsPrefix
	}
	return TeamsPrefix + "?" + url.Values{TeamsSearchParam: {teamKey}}.Encode()
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
