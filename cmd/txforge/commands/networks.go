package commands

import (
	"github.com/spf13/cobra"

	"github.com/txforge/txforge/cmd/txforge/handlers"
)

// Networks returns the command for listing supported networks.
func Networks() *cobra.Command {
	var ecosystem string

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List supported networks and their RPC endpoints",
		Long: `List supported networks and their RPC endpoints.

RPC URLs can be overridden per network with environment variables of
the form TXFORGE_RPC_URL_<NETWORK_ID> (uppercased, hyphens replaced
with underscores), e.g. TXFORGE_RPC_URL_ETHEREUM_MAINNET.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Networks(ecosystem)
		},
	}

	cmd.Flags().StringVarP(&ecosystem, "ecosystem", "e", "", "Filter by ecosystem (evm, solana, stellar)")

	return cmd
}
