// Package i18n renders coded error messages in the caller's locale.
package i18n

import (
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/poolsheet/internal/platform/i18n/catalog"
)

// BaseLocale is the fallback locale for error messages.
const BaseLocale = i18ncatalog.BaseLocale

// Code mirrors errors.Code; the errors package imports this one.
type Code = string

// Catalog holds the parsed message templates of one resolved locale.
type Catalog struct {
	locale    string
	templates map[Code]*template.Template
	raw       map[Code]string
}

// resolved locale -> *Catalog
var catalogs sync.Map

// GetCatalog returns the catalog closest to locale. Missing keys fall back
// to BaseLocale messages; unknown locales resolve to BaseLocale.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}
	if cached, ok := catalogs.Load(requested); ok {
		return cached.(*Catalog)
	}

	resolved, messages := i18ncatalog.Default().Messages(requested, i18ncatalog.NamespaceErrors)
	if cached, ok := catalogs.Load(resolved); ok {
		return cached.(*Catalog)
	}
	actual, _ := catalogs.LoadOrStore(resolved, NewCatalog(resolved, messages))
	return actual.(*Catalog)
}

// NewCatalog parses messages once. A message that is not a valid template
// is kept and rendered verbatim.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	c := &Catalog{
		locale:    locale,
		templates: make(map[Code]*template.Template, len(messages)),
		raw:       make(map[Code]string, len(messages)),
	}
	for code, text := range messages {
		c.raw[code] = text
		if !strings.Contains(text, "{{") {
			continue
		}
		if tmpl, err := template.New(code).Option("missingkey=zero").Parse(text); err == nil {
			c.templates[code] = tmpl
		}
	}
	return c
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Has reports whether code has a message in this catalog.
func (c *Catalog) Has(code Code) bool {
	_, ok := c.raw[code]
	return ok
}

// Format renders the message for code with metadata. Unknown codes render
// as the code itself; missing metadata keys render empty.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.raw[code]
	if !ok {
		return code
	}
	tmpl, ok := c.templates[code]
	if !ok {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, metadata); err != nil {
		return text
	}
	return b.String()
}
