// Package main is the entry point for the txforge CLI.
//
// txforge is a command-line tool for building blockchain transaction forms
// without writing code. An interactive wizard walks through network,
// contract, function, field, and execution configuration; the export
// pipeline turns the result into a ready-to-run React project.
//
// Commands: init, export, functions, networks, configs.
//
// For detailed usage information, run:
//
//	txforge --help
package main

import (
	"fmt"
	"os"

	"github.com/txforge/txforge/cmd/txforge/commands"
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
