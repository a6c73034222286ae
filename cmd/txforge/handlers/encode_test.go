package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txforge/txforge/internal/errdefs"
)

func TestEncode_Transfer(t *testing.T) {
	output := captureOutput(func() {
		err := Encode(context.Background(), "builtin:erc20", "transfer", []string{
			"recipient=0x000000000000000000000000000000000000dEaD",
			"amount=1000000",
		}, "evm")
		require.NoError(t, err)
	})

	out := strings.TrimSpace(output)
	assert.True(t, strings.HasPrefix(out, "0xa9059cbb"), "expected transfer selector, got %s", out)
	// selector + two 32-byte words, hex encoded.
	assert.Len(t, out, 2+8+128)
}

func TestEncode_UnknownFunction(t *testing.T) {
	err := Encode(context.Background(), "builtin:erc20", "mint", nil, "evm")
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrConfigurationInvalid)
}

func TestEncode_MalformedPair(t *testing.T) {
	err := Encode(context.Background(), "builtin:erc20", "transfer", []string{"justvalue"}, "evm")
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrConfigurationInvalid)
}

func TestEncode_UnsupportedEcosystem(t *testing.T) {
	err := Encode(context.Background(), "builtin:erc20", "transfer", nil, "solana")
	require.Error(t, err)
	assert.ErrorIs(t, err, errdefs.ErrNotSupported)
}
