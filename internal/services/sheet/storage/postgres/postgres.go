// Package postgres opens the sheet store on PostgreSQL through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/louisbranch/poolsheet/internal/platform/storage/sqlbind"
	sqlitemigrate "github.com/louisbranch/poolsheet/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/poolsheet/internal/services/sheet/storage/postgres/migrations"
	sheetsqlite "github.com/louisbranch/poolsheet/internal/services/sheet/storage/sqlite"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Open connects to dsn, applies the schema and returns a store speaking
// PostgreSQL placeholders.
func Open(ctx context.Context, dsn string) (*sheetsqlite.Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("database url is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sqlDB, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, "", sqlitemigrate.WithBind(sqlbind.Dollar)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sheetsqlite.NewWithDB(sqlDB, sheetsqlite.WithBind(sqlbind.Dollar)), nil
}
