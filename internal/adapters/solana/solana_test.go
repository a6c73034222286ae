package solana

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/schema"
)

const counterIDL = `{
  "name": "counter",
  "instructions": [
    {"name": "initialize", "args": [{"name": "start", "type": "u64"}]},
    {"name": "increment", "args": []},
    {"name": "setAuthority", "args": [{"name": "newAuthority", "type": "publicKey"}]}
  ],
  "events": [
    {"name": "Incremented", "fields": [{"name": "value", "type": "u64"}]}
  ]
}`

func newAdapter() *Adapter {
	return New(zerolog.Nop())
}

func TestLoadContract(t *testing.T) {
	s, err := newAdapter().LoadContract(context.Background(), adapters.ContractSource{Raw: []byte(counterIDL)})
	require.NoError(t, err)

	assert.Equal(t, schema.EcosystemSolana, s.Ecosystem)
	assert.Equal(t, "counter", s.Name)
	require.Len(t, s.Functions, 3)

	init := s.Function("initialize")
	require.NotNil(t, init)
	require.Len(t, init.Inputs, 1)
	assert.Equal(t, "u64", init.Inputs[0].Type)
	assert.Equal(t, schema.MutabilityWrite, init.StateMutability)

	setAuth := s.Function("setAuthority")
	require.NotNil(t, setAuth)
	assert.Equal(t, "publicKey", setAuth.Inputs[0].Type)

	require.Len(t, s.Events, 1)
	assert.Equal(t, "Incremented", s.Events[0].Name)
}

func TestLoadContractCompoundType(t *testing.T) {
	idl := `{"name":"x","instructions":[{"name":"put","args":[{"name":"item","type":{"defined":"Item"}}]}]}`
	s, err := newAdapter().LoadContract(context.Background(), adapters.ContractSource{Raw: []byte(idl)})
	require.NoError(t, err)
	assert.Contains(t, s.Function("put").Inputs[0].Type, "defined")
}

func TestLoadContractErrors(t *testing.T) {
	a := newAdapter()

	_, err := a.LoadContract(context.Background(), adapters.ContractSource{})
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))

	_, err = a.LoadContract(context.Background(), adapters.ContractSource{Builtin: "spl-token"})
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))

	_, err = a.LoadContract(context.Background(), adapters.ContractSource{Raw: []byte(`{"name":"empty"}`)})
	assert.True(t, errors.Is(err, errdefs.ErrAdapterOperationFailed))
}

func TestValidateAddress(t *testing.T) {
	a := newAdapter()
	// System program id: 32 zero bytes.
	assert.True(t, a.ValidateAddress("11111111111111111111111111111111"))
	// Token program id.
	assert.True(t, a.ValidateAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
	assert.False(t, a.ValidateAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F"))
	assert.False(t, a.ValidateAddress("abc"))
	assert.False(t, a.ValidateAddress(""))
}

func TestFormatTransactionDataUnsupported(t *testing.T) {
	a := newAdapter()
	assert.False(t, a.Supports(adapters.CapFormatTransaction))
	assert.True(t, a.Supports(adapters.CapLoadContract))

	_, err := a.FormatTransactionData(&schema.ContractFunction{ID: "increment"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrNotSupported))
}

func TestMetadata(t *testing.T) {
	a := newAdapter()
	assert.Contains(t, a.Dependencies().Runtime, "@solana/web3.js")
	assert.Equal(t, "@txforge/adapter-solana", a.PackageName())
	assert.Equal(t, "SolanaAdapter", a.TypeName())
	assert.NotEmpty(t, a.UIKits())
}
