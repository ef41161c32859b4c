// Package sqlbind rewrites portable "?" placeholders for drivers that
// number their parameters.
package sqlbind

import (
	"strconv"
	"strings"
)

// Func rewrites a query's placeholders.
type Func func(string) string

// Question leaves the query unchanged.
func Question(query string) string {
	return query
}

// Dollar numbers each "?" as $1, $2, ... in order. Question marks inside
// single-quoted literals, double-quoted identifiers and -- comments are kept.
func Dollar(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	var quote byte
	comment := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case comment:
			if c == '\n' {
				comment = false
			}
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			comment = true
		case c == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
