// Package templates renders TaskMate pages as templ components backed by
// embedded html/template files.
package templates

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
)

//go:embed html/*.html
var files embed.FS

var base = template.Must(template.New("taskmate").Funcs(funcs(nil)).ParseFS(files, "html/*.html"))

// View renders the named template with data, translating through loc.
func View(name string, loc Localizer, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return execute(w, name, loc, data)
	})
}

func execute(w io.Writer, name string, loc Localizer, data any) error {
	tmpl, err := base.Clone()
	if err != nil {
		return fmt.Errorf("clone templates: %w", err)
	}
	if err := tmpl.Funcs(funcs(loc)).ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// renderChildren renders the children attached to ctx into HTML and clears
// them so nested components do not render them twice.
func renderChildren(ctx context.Context) (template.HTML, error) {
	children := templ.GetChildren(ctx)
	if children == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := children.Render(templ.ClearChildren(ctx), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func funcs(loc Localizer) template.FuncMap {
	return template.FuncMap{
		"t": func(key string, args ...any) string {
			return T(loc, key, args...)
		},
		"date": formatDate,
		"year": func() int { return time.Now().Year() },
		"fieldError": func(errs FieldErrors, field string) string {
			return errs[field]
		},
	}
}

// formatDate renders backend RFC 3339 timestamps as a short date. Values that
// do not parse are shown as-is.
func formatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.Format("Jan 2, 2006")
		}
	}
	return raw
}
