// Package catalog holds the localized message bundles for sheet labels and
// error messages.
package catalog

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	xcatalog "golang.org/x/text/message/catalog"
)

// BaseLocale is the source locale every other locale translates.
const BaseLocale = "en-US"

// Entries maps locale -> namespace -> key -> message.
type Entries map[string]map[string]map[string]string

// Bundle resolves locales against a fixed set of translations. Keys are
// unique across namespaces so one printer can serve all of them.
type Bundle struct {
	entries Entries
	names   []string // BaseLocale first
	tags    []language.Tag
	matcher language.Matcher
	builder *xcatalog.Builder
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the built-in bundle.
func Default() *Bundle {
	defaultOnce.Do(func() {
		bundle, err := New(builtinMessages)
		if err != nil {
			panic(fmt.Sprintf("load built-in catalogs: %v", err))
		}
		defaultBundle = bundle
	})
	return defaultBundle
}

// New validates entries and builds a bundle. Every locale other than
// BaseLocale may only translate keys BaseLocale defines.
func New(entries Entries) (*Bundle, error) {
	base, ok := entries[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	baseKeys, err := collectKeys(BaseLocale, base)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		entries: Entries{},
		builder: xcatalog.NewBuilder(xcatalog.Fallback(language.MustParse(BaseLocale))),
	}
	others := slices.Sorted(maps.Keys(entries))
	others = slices.DeleteFunc(others, func(name string) bool { return name == BaseLocale })
	for _, name := range append([]string{BaseLocale}, others...) {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("catalog: locale is required")
		}
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", name, err)
		}
		keys, err := collectKeys(name, entries[name])
		if err != nil {
			return nil, err
		}
		for key := range keys {
			if _, ok := baseKeys[key]; !ok {
				return nil, fmt.Errorf("catalog %s: key %q is not in %s", name, key, BaseLocale)
			}
		}
		for key, text := range baseKeys {
			if translated, ok := keys[key]; ok {
				text = translated
			}
			if err := b.builder.SetString(tag, key, text); err != nil {
				return nil, fmt.Errorf("register %s %q: %w", name, key, err)
			}
		}
		b.entries[name] = entries[name]
		b.names = append(b.names, name)
		b.tags = append(b.tags, tag)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// collectKeys flattens one locale's namespaces, rejecting blank or
// repeated keys.
func collectKeys(locale string, namespaces map[string]map[string]string) (map[string]string, error) {
	out := map[string]string{}
	for _, ns := range slices.Sorted(maps.Keys(namespaces)) {
		if strings.TrimSpace(ns) == "" {
			return nil, fmt.Errorf("catalog %s: namespace is required", locale)
		}
		for key, text := range namespaces[ns] {
			if strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("catalog %s/%s: message key cannot be blank", locale, ns)
			}
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("catalog %s/%s: duplicate key %q", locale, ns, key)
			}
			out[key] = text
		}
	}
	return out, nil
}

// Match resolves locale to the closest bundle locale. Blank, malformed or
// unsupported locales resolve to BaseLocale.
func (b *Bundle) Match(locale string) string {
	if b == nil || b.matcher == nil {
		return BaseLocale
	}
	requested := strings.TrimSpace(locale)
	if requested == "" {
		return BaseLocale
	}
	if _, ok := b.entries[requested]; ok {
		return requested
	}
	tag, err := language.Parse(requested)
	if err != nil {
		return BaseLocale
	}
	_, index, confidence := b.matcher.Match(tag)
	if confidence == language.No {
		return BaseLocale
	}
	return b.names[index]
}

// Printer returns a printer for the closest locale. Keys missing from that
// locale print in BaseLocale.
func (b *Bundle) Printer(locale string) *message.Printer {
	resolved := b.Match(locale)
	tag := language.MustParse(BaseLocale)
	if i := slices.Index(b.names, resolved); i >= 0 {
		tag = b.tags[i]
	}
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

// Locales returns the bundle locales, BaseLocale first.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Clone(b.names)
}

// Messages returns one namespace for the closest locale, filled key by key
// from BaseLocale where the locale has no translation.
func (b *Bundle) Messages(locale, namespace string) (string, map[string]string) {
	resolved := b.Match(locale)
	out := maps.Clone(b.entries[BaseLocale][namespace])
	if out == nil {
		out = map[string]string{}
	}
	if resolved != BaseLocale {
		maps.Copy(out, b.entries[resolved][namespace])
	}
	return resolved, out
}
