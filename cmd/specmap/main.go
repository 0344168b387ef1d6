// Package main provides the entry point for the specmap CLI tool.
package main

import (
	"context"
	"os"

	"github.com/agentstation/specmap/cmd/specmap/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	application, err := app.New(version, commit, date)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancelled on SIGINT/SIGTERM so a long merge run stops between rows.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		application.Shutdown()
		app.ExitOnError(err)
	}
	application.Shutdown()
}
