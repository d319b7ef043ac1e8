// Package i18n resolves the request language and localizes web errors.
package i18n

import (
	"net/http"
	"net/url"
	"strings"

	platformi18n "github.com/taskmate/taskmate-web/internal/platform/i18n"
	"github.com/taskmate/taskmate-web/internal/services/web/platform/cookies"
	apperrors "github.com/taskmate/taskmate-web/internal/services/web/platform/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// Localizer provides translated strings for rendering.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

var languageLabels = map[language.Tag]string{
	language.AmericanEnglish:     "English",
	language.BrazilianPortuguese: "Português",
}

// ResolveTag picks the request language from the lang query parameter, the
// language cookie, then Accept-Language. persist reports whether the query
// parameter chose it.
func ResolveTag(r *http.Request) (tag language.Tag, persist bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := platformi18n.ParseTag(value); ok {
			return tag, true
		}
	}
	if value, ok := cookies.Read(r, cookies.LangName); ok {
		if tag, ok := platformi18n.ParseTag(value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return platformi18n.MatchTags(tags), false
		}
	}
	return platformi18n.DefaultTag(), false
}

// ResolveLocalizer resolves the request language, persisting an explicit
// choice, and returns a printer for it.
func ResolveLocalizer(w http.ResponseWriter, r *http.Request, jar cookies.Jar) (*message.Printer, language.Tag) {
	tag, persist := ResolveTag(r)
	if persist {
		jar.SetPreference(w, r, cookies.LangName, tag.String())
	}
	return message.NewPrinter(tag), tag
}

// Options lists the supported languages with switch URLs for the current page.
func Options(r *http.Request, active language.Tag) []LanguageOption {
	path, rawQuery := "/", ""
	if r != nil && r.URL != nil {
		path, rawQuery = r.URL.Path, r.URL.RawQuery
	}
	tags := platformi18n.SupportedTags()
	out := make([]LanguageOption, 0, len(tags))
	for _, tag := range tags {
		label := languageLabels[tag]
		if label == "" {
			label = tag.String()
		}
		out = append(out, LanguageOption{
			Tag:    tag.String(),
			Label:  label,
			URL:    languageURL(path, rawQuery, tag.String()),
			Active: tag == active,
		})
	}
	return out
}

func languageURL(path, rawQuery, tag string) string {
	if strings.TrimSpace(path) == "" {
		path = "/"
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	query.Set(LangParam, tag)
	return (&url.URL{Path: path, RawQuery: query.Encode()}).String()
}

// LocalizeError returns the user-facing text for err. Typed errors with a key
// are translated; other errors fall back to fallbackKey.
func LocalizeError(loc Localizer, err error, fallbackKey string) string {
	if text, ok := apperrors.PublicMessage(err); ok {
		return text
	}
	key := apperrors.LocalizationKey(err)
	if key == "" {
		key = fallbackKey
	}
	if key == "" {
		return ""
	}
	if loc == nil {
		return key
	}
	return loc.Sprintf(key)
}
