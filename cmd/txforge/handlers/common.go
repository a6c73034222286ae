// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/adapters/evm"
	"github.com/txforge/txforge/internal/adapters/solana"
	"github.com/txforge/txforge/internal/adapters/stellar"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// SetupLogging configures the global log level. Debug output is off unless
// verbose is set.
func SetupLogging(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// newRegistry builds the adapter registry with every supported ecosystem.
// A function variable so tests can substitute stub adapters.
var newRegistry = func() (*adapters.Registry, error) {
	return adapters.NewRegistry(
		evm.New(logger),
		solana.New(logger),
		stellar.New(logger),
	)
}

// defaultLibraryPath returns the config library location used when the --db
// flag is not set.
func defaultLibraryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".txforge/library"
	}
	return filepath.Join(home, ".txforge", "library")
}
