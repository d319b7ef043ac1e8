package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Theme values stored in the theme cookie.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Viewer is the signed-in user shown in page chrome.
type Viewer struct {
	SignedIn    bool
	DisplayName string
	Email       string
	Initials    string
	AvatarURL   string
}

// Toast is a one-time notice rendered by the layout.
type Toast struct {
	Kind    string
	Message string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// NavItem is one app sidebar link.
type NavItem struct {
	Label  string
	URL    string
	Icon   string
	Active bool
}

// Shell carries the page chrome shared by every layout.
type Shell struct {
	Title       string
	Description string
	Lang        string
	Theme       string
	Viewer      Viewer
	Languages   []LanguageOption
	Nav         []NavItem
	Toast       *Toast
	Body        any
}

// PublicLayout wraps its children in the marketing/auth page chrome.
func PublicLayout(shell Shell, loc Localizer) templ.Component {
	return layout("layout_public", shell, loc)
}

// AppLayout wraps its children in the authenticated dashboard chrome.
func AppLayout(shell Shell, loc Localizer) templ.Component {
	return layout("layout_app", shell, loc)
}

func layout(name string, shell Shell, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := renderChildren(ctx)
		if err != nil {
			return err
		}
		if shell.Theme != ThemeLight {
			shell.Theme = ThemeDark
		}
		if shell.Description == "" {
			shell.Description = T(loc, "core.meta_description")
		}
		shell.Body = body
		return execute(w, name, loc, shell)
	})
}
