// Package tags normalizes the short tag strings that link keywords and
// resources together.
package tags

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Marker prefixes every normalized tag.
const Marker = "#"

// Normalizer maps a raw tag to its canonical form.
type Normalizer func(string) string

// Default normalizes tags without a configured tag list.
var Default = New(nil)

// New returns a Normalizer that trims, lower-cases and ensures a leading
// Marker; inner whitespace is kept. A bare positive integer N resolves to the
// Nth (1-based) entry of list; numbers outside the list normalize to "".
func New(list []string) Normalizer {
	configured := append([]string(nil), list...)
	return func(raw string) string {
		return normalize(raw, configured, true)
	}
}

func normalize(raw string, list []string, allowIndex bool) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	if allowIndex {
		if n, err := strconv.Atoi(value); err == nil {
			if n < 1 || n > len(list) {
				return ""
			}
			return normalize(list[n-1], list, false)
		}
	}

	value = cases.Lower(language.Und).String(value)
	value = strings.TrimSpace(strings.TrimLeft(value, Marker))
	if value == "" {
		return ""
	}
	return Marker + value
}

// Equal reports whether two raw tags normalize to the same non-empty tag.
func (n Normalizer) Equal(a, b string) bool {
	if n == nil {
		n = Default
	}
	left := n(a)
	return left != "" && left == n(b)
}
