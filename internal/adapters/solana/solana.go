// Package solana implements the adapter interface for Solana. Contract
// definitions are Anchor-style IDL JSON. Transaction formatting is not
// implemented for this chain; the exported project encodes instructions at
// runtime through the Anchor client instead.
package solana

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/rs/zerolog"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/schema"
)

// Adapter is the Solana chain adapter.
type Adapter struct {
	log zerolog.Logger
}

// New creates the Solana adapter.
func New(log zerolog.Logger) *Adapter {
	return &Adapter{log: log.With().Str("adapter", "solana").Logger()}
}

// Ecosystem implements adapters.Adapter.
func (a *Adapter) Ecosystem() schema.Ecosystem { return schema.EcosystemSolana }

// Supports implements adapters.Adapter. Transaction formatting is the one
// capability this adapter does not implement.
func (a *Adapter) Supports(c adapters.Capability) bool {
	return c != adapters.CapFormatTransaction
}

// idl mirrors the subset of the Anchor IDL format the builder consumes.
type idl struct {
	Name         string           `json:"name"`
	Instructions []idlInstruction `json:"instructions"`
	Events       []idlEvent       `json:"events"`
}

type idlInstruction struct {
	Name string   `json:"name"`
	Args []idlArg `json:"args"`
}

type idlEvent struct {
	Name   string     `json:"name"`
	Fields []idlField `json:"fields"`
}

type idlField struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

type idlArg struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

// LoadContract parses an Anchor IDL into the normalized schema.
func (a *Adapter) LoadContract(_ context.Context, src adapters.ContractSource) (*schema.ContractSchema, error) {
	if src.Builtin != "" {
		return nil, errdefs.ConfigurationInvalid("the solana adapter has no builtin contracts")
	}
	if len(src.Raw) == 0 {
		return nil, errdefs.ConfigurationInvalid("empty contract definition")
	}

	var parsed idl
	if err := json.Unmarshal(src.Raw, &parsed); err != nil {
		return nil, errdefs.AdapterOperationFailed("parse idl", err)
	}
	if len(parsed.Instructions) == 0 {
		return nil, errdefs.AdapterOperationFailed("parse idl",
			fmt.Errorf("idl declares no instructions"))
	}

	s := &schema.ContractSchema{Ecosystem: schema.EcosystemSolana, Name: parsed.Name}
	for _, ins := range parsed.Instructions {
		fn := schema.ContractFunction{
			ID:   ins.Name,
			Name: ins.Name,
			// Anchor instructions always mutate state.
			StateMutability: schema.MutabilityWrite,
		}
		for _, arg := range ins.Args {
			fn.Inputs = append(fn.Inputs, schema.FunctionParam{Name: arg.Name, Type: idlTypeString(arg.Type)})
		}
		s.Functions = append(s.Functions, fn)
	}
	for _, ev := range parsed.Events {
		e := schema.ContractEvent{Name: ev.Name}
		for _, f := range ev.Fields {
			e.Inputs = append(e.Inputs, schema.FunctionParam{Name: f.Name, Type: idlTypeString(f.Type)})
		}
		s.Events = append(s.Events, e)
	}

	a.log.Debug().Str("program", parsed.Name).Int("instructions", len(s.Functions)).Msg("idl loaded")
	return s, nil
}

// idlTypeString flattens an IDL type node into a plain string. Primitive
// types are JSON strings; compound types (defined, vec, option) keep their
// JSON form so the generated form can at least show them as text inputs.
func idlTypeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// ValidateAddress reports whether the address is a base58-encoded 32-byte
// public key.
func (a *Adapter) ValidateAddress(address string) bool {
	b, err := base58.Decode(address)
	return err == nil && len(b) == 32
}

// FormatTransactionData is not supported for Solana. The exported project
// builds instructions at runtime via Anchor.
func (a *Adapter) FormatTransactionData(*schema.ContractFunction, map[string]string) ([]byte, error) {
	a.log.Warn().Msg("transaction formatting is not implemented for solana")
	return nil, fmt.Errorf("solana: %w", errdefs.ErrNotSupported)
}

// UIKits implements adapters.Adapter.
func (a *Adapter) UIKits() []adapters.UIKitDescriptor {
	return []adapters.UIKitDescriptor{
		{ID: "wallet-adapter", Name: "Wallet Adapter", Description: "Solana wallet-adapter modal and button"},
		{ID: "custom", Name: "Custom", Description: "Bare wallet-adapter hooks, bring your own UI"},
	}
}

// Dependencies implements adapters.Adapter.
func (a *Adapter) Dependencies() adapters.Dependencies {
	return adapters.Dependencies{
		Runtime: map[string]string{
			"@solana/web3.js":                "^1.95.0",
			"@solana/wallet-adapter-react":   "^0.15.35",
			"@solana/wallet-adapter-wallets": "^0.19.32",
			"@coral-xyz/anchor":              "^0.30.1",
		},
		Dev: map[string]string{},
	}
}

// PackageName implements adapters.Adapter.
func (a *Adapter) PackageName() string { return "@txforge/adapter-solana" }

// TypeName implements adapters.Adapter.
func (a *Adapter) TypeName() string { return "SolanaAdapter" }
