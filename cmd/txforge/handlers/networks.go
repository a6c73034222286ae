package handlers

import (
	"fmt"

	"github.com/txforge/txforge/internal/networks"
	"github.com/txforge/txforge/internal/schema"
)

// Networks prints the supported networks, optionally filtered by ecosystem.
// The RPC column reflects environment overrides.
func Networks(ecosystem string) error {
	list := networks.All()
	if ecosystem != "" {
		eco, err := schema.ParseEcosystem(ecosystem)
		if err != nil {
			return err
		}
		list = networks.ForEcosystem(eco)
	}

	fmt.Printf("%-20s %-8s %-8s %s\n", "ID", "ECO", "SOURCE", "RPC")
	for _, n := range list {
		rpc, err := networks.ResolveRPCURL(n, nil)
		if err != nil {
			return fmt.Errorf("network %s has an invalid RPC override: %w", n.ID, err)
		}
		fmt.Printf("%-20s %-8s %-8s %s\n", n.ID, n.Ecosystem, networks.OverrideSource(n, nil), rpc)
	}
	return nil
}
