// Package schema defines the chain-agnostic contract and form model.
//
// A ContractSchema is the normalized representation of a contract's callable
// functions produced by an adapter from a raw definition (ABI, IDL, contract
// spec). A FormConfig describes one generated transaction form: the target
// function, its input fields, layout, validation mode, and execution setup.
package schema

import "fmt"

// Ecosystem identifies a supported blockchain family.
type Ecosystem string

// Supported ecosystems.
const (
	EcosystemEVM     Ecosystem = "evm"
	EcosystemSolana  Ecosystem = "solana"
	EcosystemStellar Ecosystem = "stellar"
)

// Valid reports whether the ecosystem is one of the supported families.
func (e Ecosystem) Valid() bool {
	switch e {
	case EcosystemEVM, EcosystemSolana, EcosystemStellar:
		return true
	}
	return false
}

// ParseEcosystem converts a string id into an Ecosystem.
func ParseEcosystem(s string) (Ecosystem, error) {
	e := Ecosystem(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown ecosystem %q (supported: evm, solana, stellar)", s)
	}
	return e, nil
}

// StateMutability describes whether calling a function mutates chain state.
type StateMutability string

// State mutability values, normalized across chains.
const (
	MutabilityView    StateMutability = "view"
	MutabilityWrite   StateMutability = "write"
	MutabilityPayable StateMutability = "payable"
)

// FunctionParam is one input or output parameter of a contract function.
type FunctionParam struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	// Type is the chain-native type string (e.g. "uint256", "publicKey").
	Type string `json:"type" yaml:"type" mapstructure:"type"`
}

// ContractFunction is one callable function of a contract.
type ContractFunction struct {
	// ID uniquely identifies the function within its schema. For EVM this is
	// the function name plus input types when overloaded, otherwise the name.
	ID              string          `json:"id" yaml:"id" mapstructure:"id"`
	Name            string          `json:"name" yaml:"name" mapstructure:"name"`
	Inputs          []FunctionParam `json:"inputs" yaml:"inputs" mapstructure:"inputs"`
	Outputs         []FunctionParam `json:"outputs,omitempty" yaml:"outputs,omitempty" mapstructure:"outputs"`
	StateMutability StateMutability `json:"stateMutability" yaml:"state_mutability" mapstructure:"state_mutability"`
}

// ContractEvent is one event emitted by a contract. Events are carried in the
// schema for completeness but the builder only generates forms for functions.
type ContractEvent struct {
	Name   string          `json:"name" yaml:"name" mapstructure:"name"`
	Inputs []FunctionParam `json:"inputs" yaml:"inputs" mapstructure:"inputs"`
}

// ContractSchema is the normalized function/event list for a loaded contract.
type ContractSchema struct {
	Ecosystem Ecosystem `json:"ecosystem" yaml:"ecosystem" mapstructure:"ecosystem"`
	// Name is the contract name when the source definition carries one.
	Name      string             `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Functions []ContractFunction `json:"functions" yaml:"functions" mapstructure:"functions"`
	Events    []ContractEvent    `json:"events,omitempty" yaml:"events,omitempty" mapstructure:"events"`
}

// Function returns the function with the given id, or nil if absent.
func (s *ContractSchema) Function(id string) *ContractFunction {
	if s == nil {
		return nil
	}
	for i := range s.Functions {
		if s.Functions[i].ID == id {
			return &s.Functions[i]
		}
	}
	return nil
}

// HasFunction reports whether the schema contains a function with the id.
func (s *ContractSchema) HasFunction(id string) bool {
	return s.Function(id) != nil
}
