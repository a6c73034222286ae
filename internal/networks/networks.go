// Package networks holds the built-in network catalog and RPC URL override
// resolution. Overrides come from the environment (TXFORGE_RPC_URL_<ID>) or
// from the project file; the environment wins.
package networks

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/txforge/txforge/internal/schema"
)

// Config describes one selectable network.
type Config struct {
	ID          string
	Name        string
	Ecosystem   schema.Ecosystem
	RPCURL      string
	ExplorerURL string
	Testnet     bool
}

// builtin is the static network catalog. IDs are stable: generated projects
// and saved configs reference them.
var builtin = []Config{
	{ID: "ethereum-mainnet", Name: "Ethereum", Ecosystem: schema.EcosystemEVM,
		RPCURL: "https://eth.llamarpc.com", ExplorerURL: "https://etherscan.io"},
	{ID: "ethereum-sepolia", Name: "Ethereum Sepolia", Ecosystem: schema.EcosystemEVM,
		RPCURL: "https://rpc.sepolia.org", ExplorerURL: "https://sepolia.etherscan.io", Testnet: true},
	{ID: "polygon-mainnet", Name: "Polygon", Ecosystem: schema.EcosystemEVM,
		RPCURL: "https://polygon-rpc.com", ExplorerURL: "https://polygonscan.com"},
	{ID: "arbitrum-one", Name: "Arbitrum One", Ecosystem: schema.EcosystemEVM,
		RPCURL: "https://arb1.arbitrum.io/rpc", ExplorerURL: "https://arbiscan.io"},
	{ID: "solana-mainnet", Name: "Solana", Ecosystem: schema.EcosystemSolana,
		RPCURL: "https://api.mainnet-beta.solana.com", ExplorerURL: "https://explorer.solana.com"},
	{ID: "solana-devnet", Name: "Solana Devnet", Ecosystem: schema.EcosystemSolana,
		RPCURL: "https://api.devnet.solana.com", ExplorerURL: "https://explorer.solana.com?cluster=devnet", Testnet: true},
	{ID: "stellar-mainnet", Name: "Stellar", Ecosystem: schema.EcosystemStellar,
		RPCURL: "https://horizon.stellar.org", ExplorerURL: "https://stellar.expert/explorer/public"},
	{ID: "stellar-testnet", Name: "Stellar Testnet", Ecosystem: schema.EcosystemStellar,
		RPCURL: "https://horizon-testnet.stellar.org", ExplorerURL: "https://stellar.expert/explorer/testnet", Testnet: true},
}

// All returns the catalog sorted by id.
func All() []Config {
	out := make([]Config, len(builtin))
	copy(out, builtin)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ForEcosystem returns the catalog entries for one chain family.
func ForEcosystem(eco schema.Ecosystem) []Config {
	var out []Config
	for _, n := range All() {
		if n.Ecosystem == eco {
			out = append(out, n)
		}
	}
	return out
}

// ByID looks up a network by id.
func ByID(id string) (Config, error) {
	for _, n := range builtin {
		if n.ID == id {
			return n, nil
		}
	}
	return Config{}, fmt.Errorf("unknown network %q", id)
}

// envKey derives the override environment variable name for a network id:
// "ethereum-mainnet" -> "TXFORGE_RPC_URL_ETHEREUM_MAINNET".
func envKey(id string) string {
	return "TXFORGE_RPC_URL_" + strings.ToUpper(strings.ReplaceAll(id, "-", "_"))
}

// ResolveRPCURL resolves the effective RPC URL for a network. Precedence:
// environment override, then project-file override, then the built-in URL.
// Overrides must be absolute http(s) URLs; a malformed override is an error
// rather than a silent fallback.
func ResolveRPCURL(cfg Config, fileOverrides map[string]string) (string, error) {
	if v := os.Getenv(envKey(cfg.ID)); v != "" {
		return validateOverride(cfg.ID, v, "environment")
	}
	if v, ok := fileOverrides[cfg.ID]; ok && v != "" {
		return validateOverride(cfg.ID, v, "project file")
	}
	return cfg.RPCURL, nil
}

func validateOverride(id, raw, source string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid RPC URL override for %s from %s: %q", id, source, raw)
	}
	return raw, nil
}

// OverrideSource reports where the effective RPC URL for a network comes
// from: "environment", "project file", or "builtin".
func OverrideSource(cfg Config, fileOverrides map[string]string) string {
	if os.Getenv(envKey(cfg.ID)) != "" {
		return "environment"
	}
	if v, ok := fileOverrides[cfg.ID]; ok && v != "" {
		return "project file"
	}
	return "builtin"
}
