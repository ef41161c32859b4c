// Package main rolls and evaluates a single pool from the command line.
package main

import (
	"context"
	"flag"
	"os"

	rollcmd "github.com/louisbranch/poolsheet/internal/cmd/roll"
	entrypoint "github.com/louisbranch/poolsheet/internal/platform/cmd"
	"github.com/louisbranch/poolsheet/internal/platform/config"
)

func main() {
	cfg, err := rollcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	config.ExitOnError("parse flags", err)
	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	err = entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoll, func(ctx context.Context) error {
		return rollcmd.Run(ctx, cfg, os.Stdout)
	})
	config.ExitOnError("", err)
}
