// Package migrations embeds the PostgreSQL sheet schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
