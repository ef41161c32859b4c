// Package sheet parses sheet service flags and launches the service.
package sheet

import (
	"context"
	"flag"
	"fmt"
	"strings"

	entrypoint "github.com/louisbranch/poolsheet/internal/platform/cmd"
	server "github.com/louisbranch/poolsheet/internal/services/sheet/app"
)

// Config holds sheet command configuration.
type Config struct {
	Port        int      `env:"POOLSHEET_SHEET_PORT" envDefault:"8095"`
	DBPath      string   `env:"POOLSHEET_SHEET_DB_PATH" envDefault:"data/sheet.db"`
	DatabaseURL string   `env:"POOLSHEET_SHEET_DATABASE_URL"`
	Tags        []string `env:"POOLSHEET_SHEET_TAGS" envSeparator:","`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	tagList := strings.Join(cfg.Tags, ",")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The sheet gRPC server port")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the sheet SQLite database")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection URL; overrides -db when set")
	fs.StringVar(&tagList, "tags", tagList, "Comma-separated tag list for numeric tag references")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}
	cfg.Tags = splitTags(tagList)
	return cfg, nil
}

func splitTags(raw string) []string {
	var out []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Run starts the sheet gRPC API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSheet, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			Addr:        fmt.Sprintf(":%d", cfg.Port),
			DBPath:      cfg.DBPath,
			DatabaseURL: cfg.DatabaseURL,
			Tags:        cfg.Tags,
		})
	})
}
