// Package evm implements the adapter interface for EVM chains. Contract
// definitions are standard ABI JSON, parsed with go-ethereum's abi package.
package evm

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/schema"
)

// Adapter is the EVM chain adapter.
type Adapter struct {
	log zerolog.Logger
}

// New creates the EVM adapter.
func New(log zerolog.Logger) *Adapter {
	return &Adapter{log: log.With().Str("adapter", "evm").Logger()}
}

// Ecosystem implements adapters.Adapter.
func (a *Adapter) Ecosystem() schema.Ecosystem { return schema.EcosystemEVM }

// Supports implements adapters.Adapter. The EVM adapter implements the full
// capability set.
func (a *Adapter) Supports(adapters.Capability) bool { return true }

// LoadContract parses ABI JSON (or a bundled builtin definition) into the
// normalized schema.
func (a *Adapter) LoadContract(_ context.Context, src adapters.ContractSource) (*schema.ContractSchema, error) {
	raw := src.Raw
	if src.Builtin != "" {
		b, ok := builtins[src.Builtin]
		if !ok {
			return nil, errdefs.ConfigurationInvalid("unknown builtin contract %q", src.Builtin)
		}
		raw = []byte(b)
	}
	if len(raw) == 0 {
		return nil, errdefs.ConfigurationInvalid("empty contract definition")
	}

	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, errdefs.AdapterOperationFailed("parse abi", err)
	}

	// Count raw names so overloaded functions get signature-based ids.
	nameCount := make(map[string]int)
	for _, m := range parsed.Methods {
		nameCount[m.RawName]++
	}

	s := &schema.ContractSchema{Ecosystem: schema.EcosystemEVM}
	for _, m := range parsed.Methods {
		id := m.RawName
		if nameCount[m.RawName] > 1 {
			id = m.Sig
		}
		s.Functions = append(s.Functions, schema.ContractFunction{
			ID:              id,
			Name:            m.RawName,
			Inputs:          toParams(m.Inputs),
			Outputs:         toParams(m.Outputs),
			StateMutability: mutabilityOf(m.StateMutability),
		})
	}
	sort.Slice(s.Functions, func(i, j int) bool { return s.Functions[i].ID < s.Functions[j].ID })

	for _, e := range parsed.Events {
		s.Events = append(s.Events, schema.ContractEvent{Name: e.RawName, Inputs: toParams(e.Inputs)})
	}
	sort.Slice(s.Events, func(i, j int) bool { return s.Events[i].Name < s.Events[j].Name })

	a.log.Debug().Int("functions", len(s.Functions)).Int("events", len(s.Events)).Msg("contract loaded")
	return s, nil
}

func toParams(args abi.Arguments) []schema.FunctionParam {
	out := make([]schema.FunctionParam, 0, len(args))
	for _, arg := range args {
		out = append(out, schema.FunctionParam{Name: arg.Name, Type: arg.Type.String()})
	}
	return out
}

func mutabilityOf(s string) schema.StateMutability {
	switch s {
	case "view", "pure":
		return schema.MutabilityView
	case "payable":
		return schema.MutabilityPayable
	default:
		return schema.MutabilityWrite
	}
}

// ValidateAddress implements adapters.Adapter.
func (a *Adapter) ValidateAddress(address string) bool {
	return common.IsHexAddress(address)
}

// FormatTransactionData encodes the inputs into calldata: the 4-byte function
// selector followed by ABI-packed arguments.
func (a *Adapter) FormatTransactionData(fn *schema.ContractFunction, inputs map[string]string) ([]byte, error) {
	if fn == nil {
		return nil, errdefs.ConfigurationInvalid("no function selected")
	}

	types := make([]string, 0, len(fn.Inputs))
	args := make(abi.Arguments, 0, len(fn.Inputs))
	values := make([]interface{}, 0, len(fn.Inputs))

	for i, in := range fn.Inputs {
		t, err := abi.NewType(in.Type, "", nil)
		if err != nil {
			return nil, errdefs.AdapterOperationFailed("format transaction",
				fmt.Errorf("unsupported parameter type %q: %w", in.Type, err))
		}
		raw, ok := inputs[paramKey(in, i)]
		if !ok {
			return nil, errdefs.ConfigurationInvalid("missing input for parameter %q", paramKey(in, i))
		}
		v, err := convertValue(t, raw)
		if err != nil {
			return nil, errdefs.AdapterOperationFailed("format transaction",
				fmt.Errorf("parameter %q: %w", paramKey(in, i), err))
		}
		types = append(types, in.Type)
		args = append(args, abi.Argument{Name: in.Name, Type: t})
		values = append(values, v)
	}

	packed, err := args.Pack(values...)
	if err != nil {
		return nil, errdefs.AdapterOperationFailed("format transaction", err)
	}

	sig := fmt.Sprintf("%s(%s)", fn.Name, strings.Join(types, ","))
	selector := crypto.Keccak256([]byte(sig))[:4]
	return append(selector, packed...), nil
}

func paramKey(p schema.FunctionParam, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return "arg" + strconv.Itoa(i)
}

// convertValue turns a form string value into the Go value go-ethereum's
// packer expects for the given ABI type. Scalar types are supported; slices,
// arrays, and tuples are not.
func convertValue(t abi.Type, raw string) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		return strconv.ParseBool(raw)

	case abi.StringTy:
		return raw, nil

	case abi.UintTy:
		if t.Size > 64 {
			n, ok := new(big.Int).SetString(raw, 10)
			if !ok || n.Sign() < 0 {
				return nil, fmt.Errorf("invalid unsigned integer %q", raw)
			}
			return n, nil
		}
		n, err := strconv.ParseUint(raw, 10, t.Size)
		if err != nil {
			return nil, fmt.Errorf("invalid uint%d %q", t.Size, raw)
		}
		return sizedUint(n, t.Size), nil

	case abi.IntTy:
		if t.Size > 64 {
			n, ok := new(big.Int).SetString(raw, 10)
			if !ok {
				return nil, fmt.Errorf("invalid integer %q", raw)
			}
			return n, nil
		}
		n, err := strconv.ParseInt(raw, 10, t.Size)
		if err != nil {
			return nil, fmt.Errorf("invalid int%d %q", t.Size, raw)
		}
		return sizedInt(n, t.Size), nil

	case abi.BytesTy:
		return decodeHex(raw)

	case abi.FixedBytesTy:
		b, err := decodeHex(raw)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	default:
		return nil, fmt.Errorf("type %s is not supported by the form encoder", t.String())
	}
}

// sizedUint picks the Go representation go-ethereum's packer expects: native
// integers for the word-aligned widths, *big.Int for everything else
// (uint24, uint48, uint160, ...).
func sizedUint(n uint64, size int) interface{} {
	switch size {
	case 8:
		return uint8(n)
	case 16:
		return uint16(n)
	case 32:
		return uint32(n)
	case 64:
		return n
	default:
		return new(big.Int).SetUint64(n)
	}
}

func sizedInt(n int64, size int) interface{} {
	switch size {
	case 8:
		return int8(n)
	case 16:
		return int16(n)
	case 32:
		return int32(n)
	case 64:
		return n
	default:
		return big.NewInt(n)
	}
}

func decodeHex(raw string) ([]byte, error) {
	s := strings.TrimPrefix(raw, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex value %q", raw)
	}
	return b, nil
}

// UIKits implements adapters.Adapter.
func (a *Adapter) UIKits() []adapters.UIKitDescriptor {
	return []adapters.UIKitDescriptor{
		{ID: "rainbowkit", Name: "RainbowKit", Description: "Rainbow wallet connect button and modal"},
		{ID: "connectkit", Name: "ConnectKit", Description: "Family's themed connect modal"},
		{ID: "custom", Name: "Custom", Description: "Bare wagmi hooks, bring your own UI"},
	}
}

// Dependencies implements adapters.Adapter.
func (a *Adapter) Dependencies() adapters.Dependencies {
	return adapters.Dependencies{
		Runtime: map[string]string{
			"viem":                  "^2.21.0",
			"wagmi":                 "^2.12.0",
			"@tanstack/react-query": "^5.59.0",
		},
		Dev: map[string]string{},
	}
}

// PackageName implements adapters.Adapter.
func (a *Adapter) PackageName() string { return "@txforge/adapter-evm" }

// TypeName implements adapters.Adapter.
func (a *Adapter) TypeName() string { return "EvmAdapter" }
