// Package main is the entry point for the blitzem CLI.
//
// blitzem provisions and tears down the nodes and load balancers declared in
// an environment file on Hetzner Cloud. Resources are addressed by name or
// tag and reconciled against what the provider reports, so every command can
// be re-run safely.
//
// Commands: up, down, status, list, version.
//
// For detailed usage information, run:
//
//	blitzem --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/blitzem/cmd/blitzem/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
