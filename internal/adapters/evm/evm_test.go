package evm

import (
	"context"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/schema"
)

func newAdapter() *Adapter {
	return New(zerolog.Nop())
}

func TestLoadContractBuiltinERC20(t *testing.T) {
	s, err := newAdapter().LoadContract(context.Background(), adapters.ContractSource{Builtin: "erc20"})
	require.NoError(t, err)

	assert.Equal(t, schema.EcosystemEVM, s.Ecosystem)
	require.True(t, s.HasFunction("transfer"))
	require.True(t, s.HasFunction("approve"))
	require.True(t, s.HasFunction("balanceOf"))

	transfer := s.Function("transfer")
	require.Len(t, transfer.Inputs, 2)
	assert.Equal(t, "recipient", transfer.Inputs[0].Name)
	assert.Equal(t, "address", transfer.Inputs[0].Type)
	assert.Equal(t, schema.MutabilityWrite, transfer.StateMutability)

	balanceOf := s.Function("balanceOf")
	assert.Equal(t, schema.MutabilityView, balanceOf.StateMutability)

	require.Len(t, s.Events, 2)
	assert.Equal(t, "Approval", s.Events[0].Name)
	assert.Equal(t, "Transfer", s.Events[1].Name)
}

func TestLoadContractOverloads(t *testing.T) {
	abiJSON := `[
	  {"type":"function","name":"mint","inputs":[{"name":"to","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	  {"type":"function","name":"mint","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}
	]`
	s, err := newAdapter().LoadContract(context.Background(), adapters.ContractSource{Raw: []byte(abiJSON)})
	require.NoError(t, err)
	require.Len(t, s.Functions, 2)

	// Overloaded functions get signature-based ids, unique within the schema.
	assert.True(t, s.HasFunction("mint(address)"))
	assert.True(t, s.HasFunction("mint(address,uint256)"))
}

func TestLoadContractErrors(t *testing.T) {
	a := newAdapter()

	_, err := a.LoadContract(context.Background(), adapters.ContractSource{})
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))

	_, err = a.LoadContract(context.Background(), adapters.ContractSource{Builtin: "erc721"})
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))

	_, err = a.LoadContract(context.Background(), adapters.ContractSource{Raw: []byte("not json")})
	assert.True(t, errors.Is(err, errdefs.ErrAdapterOperationFailed))
}

func TestValidateAddress(t *testing.T) {
	a := newAdapter()
	assert.True(t, a.ValidateAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"))
	assert.True(t, a.ValidateAddress("6B175474E89094C44Da98b954EedeAC495271d0F"))
	assert.False(t, a.ValidateAddress("0x123"))
	assert.False(t, a.ValidateAddress("GDUKMGUGDZQK6YHYA5Z6AY2G4XDSZPSZ3SW5UN3ARVMO6QSRDWP5YLEX"))
	assert.False(t, a.ValidateAddress(""))
}

func TestFormatTransactionData(t *testing.T) {
	a := newAdapter()
	s, err := a.LoadContract(context.Background(), adapters.ContractSource{Builtin: "erc20"})
	require.NoError(t, err)

	data, err := a.FormatTransactionData(s.Function("transfer"), map[string]string{
		"recipient": "0x6B175474E89094C44Da98b954EedeAC495271d0F",
		"amount":    "1000000000000000000",
	})
	require.NoError(t, err)

	// transfer(address,uint256) selector.
	assert.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))
	// Two 32-byte words follow the selector.
	assert.Len(t, data, 4+64)
	// The address occupies the last 20 bytes of the first word.
	assert.Equal(t, "6b175474e89094c44da98b954eedeac495271d0f", hex.EncodeToString(data[4+12:4+32]))
}

func TestFormatTransactionDataScalarTypes(t *testing.T) {
	a := newAdapter()
	fn := &schema.ContractFunction{
		ID:   "configure",
		Name: "configure",
		Inputs: []schema.FunctionParam{
			{Name: "flag", Type: "bool"},
			{Name: "count", Type: "uint8"},
			{Name: "label", Type: "string"},
			{Name: "salt", Type: "bytes32"},
		},
	}

	data, err := a.FormatTransactionData(fn, map[string]string{
		"flag":  "true",
		"count": "7",
		"label": "hello",
		"salt":  "0x" + "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestFormatTransactionDataIntegerWidths(t *testing.T) {
	a := newAdapter()

	// Non-word-aligned widths (uint24, uint48, int40, ...) appear in real
	// ABIs; the packer wants *big.Int for them and native integers only for
	// 8/16/32/64.
	tests := []struct {
		paramType string
		value     string
	}{
		{"uint8", "255"},
		{"uint16", "65535"},
		{"uint24", "7"},
		{"uint32", "7"},
		{"uint40", "1099511627775"},
		{"uint48", "7"},
		{"uint64", "7"},
		{"uint160", "7"},
		{"uint256", "7"},
		{"int24", "-7"},
		{"int40", "-7"},
		{"int64", "-7"},
		{"int128", "-7"},
	}

	for _, tt := range tests {
		t.Run(tt.paramType, func(t *testing.T) {
			fn := &schema.ContractFunction{
				ID:     "set",
				Name:   "set",
				Inputs: []schema.FunctionParam{{Name: "value", Type: tt.paramType}},
			}
			data, err := a.FormatTransactionData(fn, map[string]string{"value": tt.value})
			require.NoError(t, err)
			assert.Len(t, data, 4+32)
		})
	}

	// A positive small value lands in the low byte of its word regardless of
	// the declared width.
	fn := &schema.ContractFunction{
		ID:     "set",
		Name:   "set",
		Inputs: []schema.FunctionParam{{Name: "value", Type: "uint48"}},
	}
	data, err := a.FormatTransactionData(fn, map[string]string{"value": "7"})
	require.NoError(t, err)
	assert.Equal(t, byte(7), data[4+31])
}

func TestFormatTransactionDataErrors(t *testing.T) {
	a := newAdapter()
	s, err := a.LoadContract(context.Background(), adapters.ContractSource{Builtin: "erc20"})
	require.NoError(t, err)
	transfer := s.Function("transfer")

	tests := []struct {
		name   string
		inputs map[string]string
		kind   error
	}{
		{"missing input", map[string]string{"recipient": "0x6B175474E89094C44Da98b954EedeAC495271d0F"}, errdefs.ErrConfigurationInvalid},
		{"bad address", map[string]string{"recipient": "nope", "amount": "1"}, errdefs.ErrAdapterOperationFailed},
		{"bad amount", map[string]string{"recipient": "0x6B175474E89094C44Da98b954EedeAC495271d0F", "amount": "-5"}, errdefs.ErrAdapterOperationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.FormatTransactionData(transfer, tt.inputs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind))
		})
	}

	_, err = a.FormatTransactionData(nil, nil)
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))
}

func TestCapabilitiesAndMetadata(t *testing.T) {
	a := newAdapter()
	assert.True(t, a.Supports(adapters.CapLoadContract))
	assert.True(t, a.Supports(adapters.CapFormatTransaction))

	kits := a.UIKits()
	require.NotEmpty(t, kits)
	assert.Equal(t, "rainbowkit", kits[0].ID)

	deps := a.Dependencies()
	assert.Contains(t, deps.Runtime, "viem")
	assert.Contains(t, deps.Runtime, "wagmi")

	assert.Equal(t, "@txforge/adapter-evm", a.PackageName())
	assert.Equal(t, "EvmAdapter", a.TypeName())
}
