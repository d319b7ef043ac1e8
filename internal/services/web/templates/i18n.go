package templates

import (
	"github.com/taskmate/taskmate-web/internal/platform/i18n"
	"golang.org/x/text/message"
)

// Localizer provides translated strings for web templ components.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// fallback renders base-locale text for components built without a request
// localizer, such as error pages written before language resolution.
var fallback = message.NewPrinter(i18n.DefaultTag())

// T translates key with loc, or with the base locale when loc is nil.
// Non-string references render empty without a localizer.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	if _, ok := key.(string); !ok {
		return ""
	}
	return fallback.Sprintf(key, args...)
}
