// Package catalog loads the embedded operator-facing message catalogs and
// exposes them as x/text printers.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	xcatalog "golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

const (
	// BaseLocale is the canonical source locale for catalogs.
	BaseLocale = "en-US"
)

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// LocaleCatalog stores all messages for one locale.
type LocaleCatalog struct {
	Locale     string
	Namespaces map[string]map[string]string
	Messages   map[string]string
}

// Bundle contains all locale catalogs loaded from disk.
type Bundle struct {
	locales map[string]*LocaleCatalog
	tags    []language.Tag
	matcher language.Matcher
	builder *xcatalog.Builder
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

// LoadEmbedded loads catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from catalogFS.
// Keys missing from a non-base locale fall back to the base locale text.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]*LocaleCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.addFile(p, file); err != nil {
			return nil, err
		}
	}

	base, ok := bundle.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if err := bundle.build(base); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("catalog %s: invalid locale %q: %w", p, locale, err)
	}
	namespace := strings.TrimSpace(file.Namespace)
	if namespace != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, namespace, namespaceFromPath)
	}
	if file.Messages == nil {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	localeCatalog, ok := b.locales[locale]
	if !ok {
		localeCatalog = &LocaleCatalog{
			Locale:     locale,
			Namespaces: map[string]map[string]string{},
			Messages:   map[string]string{},
		}
		b.locales[locale] = localeCatalog
	}
	if _, exists := localeCatalog.Namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", p, namespace, locale)
	}

	namespaceMessages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("catalog %s: key %q must start with %q", p, key, namespace+".")
		}
		if _, exists := localeCatalog.Messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, locale)
		}
		localeCatalog.Messages[key] = value
		namespaceMessages[key] = value
	}
	localeCatalog.Namespaces[namespace] = namespaceMessages
	return nil
}

// build registers every locale with an x/text catalog builder, base first so
// the matcher prefers it on ties.
func (b *Bundle) build(base *LocaleCatalog) error {
	b.builder = xcatalog.NewBuilder(xcatalog.Fallback(language.MustParse(BaseLocale)))

	locales := b.Locales()
	b.tags = make([]language.Tag, 0, len(locales))
	b.tags = append(b.tags, language.MustParse(BaseLocale))
	for _, locale := range locales {
		if locale != BaseLocale {
			b.tags = append(b.tags, language.MustParse(locale))
		}
	}

	for _, tag := range b.tags {
		localeCatalog := b.locales[tag.String()]
		for key, baseValue := range base.Messages {
			value, ok := localeCatalog.Messages[key]
			if !ok {
				value = baseValue
			}
			if err := b.builder.SetString(tag, key, value); err != nil {
				return fmt.Errorf("register %s %s: %w", tag, key, err)
			}
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// HasLocale reports whether locale has a catalog.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[locale]
	return ok
}

// Locales returns the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	locales := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales
}

// Message returns the raw text for key in locale without fallback.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	localeCatalog, ok := b.locales[locale]
	if !ok {
		return "", false
	}
	value, ok := localeCatalog.Messages[key]
	return value, ok
}

// Resolve returns the supported locale closest to the requested one,
// falling back to BaseLocale.
func (b *Bundle) Resolve(locale string) string {
	if b == nil || b.matcher == nil {
		return BaseLocale
	}
	requested, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return BaseLocale
	}
	_, index, confidence := b.matcher.Match(requested)
	if confidence == language.No {
		return BaseLocale
	}
	return b.tags[index].String()
}

// Printer returns a printer formatting catalog keys for the resolved locale.
func (b *Bundle) Printer(locale string) *message.Printer {
	if b == nil || b.builder == nil {
		return message.NewPrinter(language.MustParse(BaseLocale))
	}
	tag := language.MustParse(b.Resolve(locale))
	return message.NewPrinter(tag, message.Catalog(b.builder))
}
