// Package adapters defines the per-ecosystem capability interface used to
// load contract definitions, validate addresses, and format transaction
// data, plus the registry mapping ecosystems to adapters.
//
// Adapters implement a fixed capability set; chains that do not support an
// operation report it through Supports and return ErrNotSupported from the
// call, so callers handle the unsupported case explicitly instead of relying
// on a method silently being absent.
package adapters

import (
	"context"
	"fmt"
	"sort"

	"github.com/txforge/txforge/internal/schema"
)

// Capability identifies one operation of the adapter interface.
type Capability string

// Adapter capabilities.
const (
	CapLoadContract      Capability = "load-contract"
	CapValidateAddress   Capability = "validate-address"
	CapFormatTransaction Capability = "format-transaction"
	CapUIKits            Capability = "ui-kits"
)

// ContractSource is a raw contract definition handed to LoadContract. Either
// Raw holds the definition bytes (ABI JSON, IDL, contract spec) or Builtin
// names a definition bundled with the adapter (e.g. "erc20").
type ContractSource struct {
	Raw     []byte
	Builtin string
}

// UIKitDescriptor describes one wallet-connection UI kit an adapter can wire
// into the exported project.
type UIKitDescriptor struct {
	ID          string
	Name        string
	Description string
}

// Dependencies is the npm dependency set an adapter requires in the exported
// project, name to version-range.
type Dependencies struct {
	Runtime map[string]string
	Dev     map[string]string
}

// Adapter is the per-ecosystem capability interface.
type Adapter interface {
	// Ecosystem returns the chain family this adapter serves.
	Ecosystem() schema.Ecosystem

	// Supports reports whether the adapter implements a capability.
	Supports(Capability) bool

	// LoadContract parses a raw contract definition into the normalized
	// schema. Returns ErrNotSupported when the adapter cannot load contracts.
	LoadContract(ctx context.Context, src ContractSource) (*schema.ContractSchema, error)

	// ValidateAddress reports whether an address is well-formed for the chain.
	ValidateAddress(address string) bool

	// FormatTransactionData encodes user inputs into the chain's transaction
	// payload for the given function. Inputs are keyed by parameter name with
	// string values as entered in the form.
	FormatTransactionData(fn *schema.ContractFunction, inputs map[string]string) ([]byte, error)

	// UIKits returns the wallet UI kits available for exported projects.
	UIKits() []UIKitDescriptor

	// Dependencies returns the npm packages the exported project needs.
	Dependencies() Dependencies

	// PackageName is the adapter's npm package referenced by generated source.
	PackageName() string

	// TypeName is the adapter class name used in generated source.
	TypeName() string
}

// Registry maps ecosystems to adapters. Construct one at the composition
// root and pass it to the wizard and export pipeline.
type Registry struct {
	byEco map[schema.Ecosystem]Adapter
}

// NewRegistry builds a registry from the given adapters. Registering two
// adapters for the same ecosystem is a programming error.
func NewRegistry(adapters ...Adapter) (*Registry, error) {
	r := &Registry{byEco: make(map[schema.Ecosystem]Adapter, len(adapters))}
	for _, a := range adapters {
		if _, dup := r.byEco[a.Ecosystem()]; dup {
			return nil, fmt.Errorf("duplicate adapter for ecosystem %q", a.Ecosystem())
		}
		r.byEco[a.Ecosystem()] = a
	}
	return r, nil
}

// Get returns the adapter for an ecosystem.
func (r *Registry) Get(eco schema.Ecosystem) (Adapter, error) {
	a, ok := r.byEco[eco]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for ecosystem %q", eco)
	}
	return a, nil
}

// Ecosystems lists the registered ecosystems sorted by id.
func (r *Registry) Ecosystems() []schema.Ecosystem {
	out := make([]schema.Ecosystem, 0, len(r.byEco))
	for eco := range r.byEco {
		out = append(out, eco)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
