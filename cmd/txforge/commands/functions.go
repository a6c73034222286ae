package commands

import (
	"github.com/spf13/cobra"

	"github.com/txforge/txforge/cmd/txforge/handlers"
)

// Functions returns the command for listing the callable functions of a
// contract definition without running the wizard.
func Functions() *cobra.Command {
	var ecosystem string

	cmd := &cobra.Command{
		Use:   "functions <source>",
		Short: "List the callable functions of a contract definition",
		Long: `List the callable functions of a contract definition.

The source is a path to an ABI/IDL file or a builtin reference such
as builtin:erc20. Functions are listed with their inputs and state
mutability, using the same parsing the wizard uses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Functions(cmd.Context(), args[0], ecosystem)
		},
	}

	cmd.Flags().StringVarP(&ecosystem, "ecosystem", "e", "evm", "Ecosystem the definition belongs to (evm, solana, stellar)")

	return cmd
}
