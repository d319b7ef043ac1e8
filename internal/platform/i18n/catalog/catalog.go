// Package catalog loads the embedded UI message catalogs and registers them
// with golang.org/x/text/message.
//
// Catalogs live at locales/<locale>/<namespace>.yaml. Every key in a file is
// prefixed by its namespace, so "auth.yaml" only defines "auth.*" keys.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale. Other locales fall back to it per key.
const BaseLocale = "en-US"

const catalogGlob = "locales/*/*.yaml"

//go:embed locales/*/*.yaml
var embedded embed.FS

type file struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale keyed by locale, then message key.
type Bundle struct {
	messages map[string]map[string]string
	sources  map[string]string // locale/namespace -> file path
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every catalog in fsys. The base locale must be present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, catalogGlob)
	if err != nil {
		return nil, fmt.Errorf("glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("no catalog files found")
	}
	slices.Sort(paths)

	b := &Bundle{messages: map[string]map[string]string{}, sources: map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		f, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.add(p, f); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", p, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return b, nil
}

// decode rejects unknown fields and YAML duplicate keys.
func decode(data []byte) (file, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return file{}, errors.New("catalog is empty")
		}
		return file{}, err
	}
	f.Locale = strings.TrimSpace(f.Locale)
	f.Namespace = strings.TrimSpace(f.Namespace)
	switch {
	case f.Locale == "":
		return file{}, errors.New("missing locale")
	case f.Namespace == "":
		return file{}, errors.New("missing namespace")
	case len(f.Messages) == 0:
		return file{}, errors.New("missing messages")
	}
	return f, nil
}

func (b *Bundle) add(p string, f file) error {
	if dirLocale := path.Base(path.Dir(p)); f.Locale != dirLocale {
		return fmt.Errorf("locale %q must match directory %q", f.Locale, dirLocale)
	}
	if stem := strings.TrimSuffix(path.Base(p), path.Ext(p)); f.Namespace != stem {
		return fmt.Errorf("namespace %q must match file name %q", f.Namespace, stem)
	}
	source := f.Locale + "/" + f.Namespace
	if prev, ok := b.sources[source]; ok {
		return fmt.Errorf("namespace %q already loaded from %s", f.Namespace, prev)
	}
	b.sources[source] = p

	messages := b.messages[f.Locale]
	if messages == nil {
		messages = map[string]string{}
		b.messages[f.Locale] = messages
	}
	prefix := f.Namespace + "."
	for key, value := range f.Messages {
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, prefix) {
			return fmt.Errorf("key %q must start with %q", key, prefix)
		}
		if _, dup := messages[key]; dup {
			return fmt.Errorf("duplicate key %q in locale %s", key, f.Locale)
		}
		messages[key] = value
	}
	return nil
}

// Register installs every locale with x/text/message, filling keys a locale
// lacks with the base text.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		merged := b.LocaleMessages(BaseLocale)
		maps.Copy(merged, b.messages[locale])
		for _, key := range slices.Sorted(maps.Keys(merged)) {
			if err := message.SetString(tag, key, merged[key]); err != nil {
				return fmt.Errorf("register %s %q: %w", locale, key, err)
			}
		}
	}
	return nil
}

// HasLocale reports whether locale was loaded.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.messages[strings.TrimSpace(locale)]
	return ok
}

// Locales returns the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.messages))
}

// LocaleMessages returns a copy of the messages defined for locale.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	out := maps.Clone(b.messages[strings.TrimSpace(locale)])
	if out == nil {
		out = map[string]string{}
	}
	return out
}

// Message looks up key in locale, then in the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	for _, candidate := range []string{strings.TrimSpace(locale), BaseLocale} {
		if value, ok := b.messages[candidate][key]; ok {
			return value, true
		}
	}
	return "", false
}

// MissingKeys lists base keys that locale leaves untranslated.
func (b *Bundle) MissingKeys(locale string) []string {
	if b == nil {
		return nil
	}
	translated := b.messages[strings.TrimSpace(locale)]
	var missing []string
	for key := range b.messages[BaseLocale] {
		if _, ok := translated[key]; !ok {
			missing = append(missing, key)
		}
	}
	slices.Sort(missing)
	return missing
}
