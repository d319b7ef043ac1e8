// Package pagerender centralizes page rendering for public and app layouts.
package pagerender

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	module "github.com/taskmate/taskmate-web/internal/services/web/module"
	flashnotice "github.com/taskmate/taskmate-web/internal/services/web/platform/flash"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/httpx"
	webi18n "github.com/taskmate/taskmate-web/internal/services/web/platform/i18n"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/theme"
	"github.com/taskmate/taskmate-web/internal/services/web/routepath"
	webtemplates "github.com/taskmate/taskmate-web/internal/services/web/templates"
	"golang.org/x/text/language"
)

// Page describes one rendered response. Localizer and Lang are optional;
// when unset they are resolved from the request.
type Page struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
	Localizer  webi18n.Localizer
	Lang       language.Tag
}

// WriteAppPage writes an authenticated page. HTMX requests receive the
// fragment only.
func WriteAppPage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	return write(w, r, deps, page, webtemplates.AppLayout)
}

// WritePublicPage writes a landing or auth page.
func WritePublicPage(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	return write(w, r, deps, page, webtemplates.PublicLayout)
}

type layoutFunc func(webtemplates.Shell, webtemplates.Localizer) templ.Component

func write(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page, layout layoutFunc) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}
	loc, lang := page.Localizer, page.Lang
	if loc == nil {
		loc, lang = webi18n.ResolveLocalizer(w, r, deps.Cookies)
	}
	ctx := httpx.RequestContext(r)
	toast := resolveFlashToast(w, r, deps, loc)

	var buf bytes.Buffer
	if httpx.IsHTMXRequest(r) {
		if toast != nil {
			if err := webtemplates.View("toast", loc, toast).Render(ctx, &buf); err != nil {
				return err
			}
		}
		if err := fragment.Render(ctx, &buf); err != nil {
			return err
		}
	} else {
		viewer := module.Viewer{}
		if deps.ResolveViewer != nil {
			viewer = deps.ResolveViewer(r)
		}
		shell := webtemplates.Shell{
			Title:     page.Title,
			Lang:      lang.String(),
			Theme:     theme.Resolve(r),
			Viewer:    templateViewer(viewer),
			Languages: languageOptions(r, lang),
			Nav:       appNav(requestPath(r), loc),
			Toast:     toast,
		}
		if err := layout(shell, loc).Render(templ.WithChildren(ctx, fragment), &buf); err != nil {
			return err
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(buf.Bytes())
	return nil
}

func resolveFlashToast(w http.ResponseWriter, r *http.Request, deps module.Dependencies, loc webi18n.Localizer) *webtemplates.Toast {
	notice, ok := flashnotice.ReadAndClear(w, r, deps.Cookies)
	if !ok {
		return nil
	}
	message := notice.Text
	if message == "" {
		message = strings.TrimSpace(webtemplates.T(loc, notice.Key))
	}
	if message == "" {
		return nil
	}
	return &webtemplates.Toast{Kind: string(notice.Kind), Message: message}
}

func templateViewer(viewer module.Viewer) webtemplates.Viewer {
	return webtemplates.Viewer{
		SignedIn:    viewer.SignedIn,
		DisplayName: viewer.DisplayName,
		Email:       viewer.Email,
		Initials:    viewer.Initials,
		AvatarURL:   viewer.AvatarURL,
	}
}

func languageOptions(r *http.Request, active language.Tag) []webtemplates.LanguageOption {
	options := webi18n.Options(r, active)
	out := make([]webtemplates.LanguageOption, 0, len(options))
	for _, option := range options {
		out = append(out, webtemplates.LanguageOption(option))
	}
	return out
}

func appNav(path string, loc webi18n.Localizer) []webtemplates.NavItem {
	items := []struct {
		key, url, prefix, icon string
	}{
		{"core.nav.dashboard", routepath.AppDashboard, routepath.DashboardPrefix, "home"},
		{"core.nav.teams", routepath.TeamsPrefix, routepath.TeamsPrefix, "users"},
		{"core.nav.profile", routepath.ProfilePrefix, routepath.ProfilePrefix, "user"},
	}
	out := make([]webtemplates.NavItem, 0, len(items))
	for _, item := range items {
		out = append(out, webtemplates.NavItem{
			Label:  webtemplates.T(loc, item.key),
			URL:    item.url,
			Icon:   item.icon,
			Active: path+"/" == item.prefix || strings.HasPrefix(path, item.prefix),
		})
	}
	return out
}

func requestPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}
