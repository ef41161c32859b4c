// Package main starts the sheet gRPC service process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	sheetcmd "github.com/louisbranch/poolsheet/internal/cmd/sheet"
	entrypoint "github.com/louisbranch/poolsheet/internal/platform/cmd"
)

func main() {
	cfg, err := sheetcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceSheet))
	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := sheetcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
