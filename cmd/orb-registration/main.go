// Package main is the entry point for the orb-registration CLI.
//
// orb-registration provisions identities for manufactured orb hardware
// units, builds their initial persistent-storage images, and registers
// them against the management API and the operator inventory.
//
// Commands: init, register, batch, doctor, version.
//
// For detailed usage information, run:
//
//	orb-registration --help
package main

import (
	"fmt"
	"os"

	"github.com/worldcoin/orb-registration/cmd/orb-registration/commands"
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
