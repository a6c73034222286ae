package commands

import (
	"github.com/spf13/cobra"

	"github.com/txforge/txforge/cmd/txforge/handlers"
)

// Encode returns the command for encoding transaction data from the command
// line, useful for checking what the exported form will submit.
func Encode() *cobra.Command {
	var ecosystem string

	cmd := &cobra.Command{
		Use:   "encode <source> <function> [name=value ...]",
		Short: "Encode transaction data for a contract function",
		Long: `Encode transaction data for a contract function.

Loads the contract definition, selects the function by id, and encodes
the name=value inputs into the chain's transaction payload (for EVM,
the 4-byte selector plus ABI-packed arguments). This mirrors what the
exported form submits at runtime.

Example:

  txforge encode builtin:erc20 transfer \
    recipient=0x000000000000000000000000000000000000dEaD amount=1000000`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Encode(cmd.Context(), args[0], args[1], args[2:], ecosystem)
		},
	}

	cmd.Flags().StringVarP(&ecosystem, "ecosystem", "e", "evm", "Ecosystem the definition belongs to (evm, solana, stellar)")

	return cmd
}
