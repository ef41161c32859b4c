// Package sqlite provides the SQL sheet store. Open backs it with a SQLite
// file; NewWithDB lets other drivers reuse the same queries.
package sqlite
