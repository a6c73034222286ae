package commands

import (
	"github.com/spf13/cobra"

	"github.com/txforge/txforge/cmd/txforge/handlers"
)

// Init returns the command for interactively building a form configuration.
//
// This command guides users through creating a form configuration YAML file
// using an interactive wizard with text inputs, single-select, and multi-select
// prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "txforge.yaml")
//	--save, -s: Also save the result to the local config library
func Init() *cobra.Command {
	var (
		outputPath string
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively build a transaction form configuration",
		Long: `Interactively build a transaction form configuration file.

This command guides you through configuring a transaction form
step by step. It will ask about:

  - Project name
  - Ecosystem and target network
  - Contract definition (ABI/IDL file or a builtin like erc20)
  - The contract function the form will call
  - Form fields, labels, and validation behavior
  - Execution method (wallet signing or relayer) and wallet UI kit

The generated YAML can be exported into a ready-to-run React
project with 'txforge export'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, save)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "txforge.yaml", "Output file path")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "Also save the result to the config library")

	return cmd
}
