// Package main is the entry point for the promotectl CLI.
//
// promotectl promotes a previously built, tagged artifact to a production
// environment through a fixed sequence of gated steps: approval, existence
// check, re-tagging, template apply and rollout verification, followed by a
// stakeholder notification.
//
// For detailed usage information, run:
//
//	promotectl --help
package main

import (
	"fmt"
	"os"

	"github.com/promokit/promotectl/cmd/promotectl/commands"
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
