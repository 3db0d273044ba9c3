// Package main is the entry point for the sandbox-teardown CLI.
//
// sandbox-teardown tears down a sandbox reservation on the orchestration
// server: it disconnects routes, powers off or deletes the deployed apps and
// releases the reservation's connectivity.
//
// For detailed usage information, run:
//
//	sandbox-teardown --help
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/imamik/sandbox-teardown/cmd/sandbox-teardown/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
