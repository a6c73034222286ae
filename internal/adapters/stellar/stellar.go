// Package stellar implements the adapter interface for Stellar. Only
// contract-spec loading, address validation, and UI-kit metadata are
// implemented; transaction formatting is left to the exported project's
// Stellar SDK at runtime.
package stellar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/schema"
)

// Adapter is the Stellar chain adapter.
type Adapter struct {
	log zerolog.Logger
}

// New creates the Stellar adapter.
func New(log zerolog.Logger) *Adapter {
	return &Adapter{log: log.With().Str("adapter", "stellar").Logger()}
}

// Ecosystem implements adapters.Adapter.
func (a *Adapter) Ecosystem() schema.Ecosystem { return schema.EcosystemStellar }

// Supports implements adapters.Adapter.
func (a *Adapter) Supports(c adapters.Capability) bool {
	return c != adapters.CapFormatTransaction
}

// contractSpec is the JSON contract description accepted for Stellar: a flat
// function list exported from a Soroban contract spec.
type contractSpec struct {
	Name      string `json:"name"`
	Functions []struct {
		Name   string `json:"name"`
		Inputs []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"inputs"`
	} `json:"functions"`
}

// LoadContract parses a contract-spec JSON document into the normalized schema.
func (a *Adapter) LoadContract(_ context.Context, src adapters.ContractSource) (*schema.ContractSchema, error) {
	if src.Builtin != "" {
		return nil, errdefs.ConfigurationInvalid("the stellar adapter has no builtin contracts")
	}
	if len(src.Raw) == 0 {
		return nil, errdefs.ConfigurationInvalid("empty contract definition")
	}

	var spec contractSpec
	if err := json.Unmarshal(src.Raw, &spec); err != nil {
		return nil, errdefs.AdapterOperationFailed("parse contract spec", err)
	}
	if len(spec.Functions) == 0 {
		return nil, errdefs.AdapterOperationFailed("parse contract spec",
			fmt.Errorf("spec declares no functions"))
	}

	s := &schema.ContractSchema{Ecosystem: schema.EcosystemStellar, Name: spec.Name}
	for _, f := range spec.Functions {
		fn := schema.ContractFunction{ID: f.Name, Name: f.Name, StateMutability: schema.MutabilityWrite}
		for _, in := range f.Inputs {
			fn.Inputs = append(fn.Inputs, schema.FunctionParam{Name: in.Name, Type: in.Type})
		}
		s.Functions = append(s.Functions, fn)
	}
	return s, nil
}

// base32Alphabet is the RFC 4648 alphabet used by Stellar strkeys.
const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// ValidateAddress accepts Stellar account strkeys: 56 characters, starting
// with G, drawn from the base32 alphabet. The checksum is not verified.
func (a *Adapter) ValidateAddress(address string) bool {
	if len(address) != 56 || address[0] != 'G' {
		return false
	}
	for _, r := range address {
		if !strings.ContainsRune(base32Alphabet, r) {
			return false
		}
	}
	return true
}

// FormatTransactionData is not supported for Stellar.
func (a *Adapter) FormatTransactionData(*schema.ContractFunction, map[string]string) ([]byte, error) {
	a.log.Warn().Msg("transaction formatting is not implemented for stellar")
	return nil, fmt.Errorf("stellar: %w", errdefs.ErrNotSupported)
}

// UIKits implements adapters.Adapter.
func (a *Adapter) UIKits() []adapters.UIKitDescriptor {
	return []adapters.UIKitDescriptor{
		{ID: "stellar-wallets-kit", Name: "Stellar Wallets Kit", Description: "Creit's multi-wallet connect modal"},
	}
}

// Dependencies implements adapters.Adapter.
func (a *Adapter) Dependencies() adapters.Dependencies {
	return adapters.Dependencies{
		Runtime: map[string]string{
			"@stellar/stellar-sdk":            "^12.3.0",
			"@creit.tech/stellar-wallets-kit": "^1.2.0",
		},
		Dev: map[string]string{},
	}
}

// PackageName implements adapters.Adapter.
func (a *Adapter) PackageName() string { return "@txforge/adapter-stellar" }

// TypeName implements adapters.Adapter.
func (a *Adapter) TypeName() string { return "StellarAdapter" }
