// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/txforge/txforge/cmd/txforge/handlers"
)

// Root returns the root command for the txforge CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It provides basic CLI metadata and organizes the command hierarchy.
func Root() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "txforge",
		Short: "Build blockchain transaction forms without code",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			handlers.SetupLogging(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Export())

	// Inspection commands
	cmd.AddCommand(Functions())
	cmd.AddCommand(Encode())
	cmd.AddCommand(Networks())
	cmd.AddCommand(Configs())

	// Utility commands
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
