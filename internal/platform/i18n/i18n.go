// Package i18n owns the supported UI languages and registers the embedded
// message catalogs with golang.org/x/text on first import.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/taskmate/taskmate-web/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

var (
	registerOnce sync.Once
	registerErr  error
)

func init() {
	if err := Register(); err != nil {
		panic(fmt.Sprintf("register message catalogs: %v", err))
	}
}

// Register loads the embedded catalogs and registers them once per process.
func Register() error {
	registerOnce.Do(func() {
		bundle, err := catalog.LoadEmbedded()
		if err != nil {
			registerErr = err
			return
		}
		registerErr = bundle.Register()
	})
	return registerErr
}

// SupportedTags returns a copy of the supported UI languages. The first entry
// is the default.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the fallback UI language.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses value and reports whether it maps onto a supported tag.
// Bare languages such as "pt" resolve to their supported regional variant.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return DefaultTag(), false
	}
	return supported[index], true
}

// MatchTags picks the best supported tag for an Accept-Language preference
// list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}
