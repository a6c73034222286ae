package handlers

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/schema"
)

// Encode loads a contract definition and encodes name=value inputs into the
// transaction payload for one function.
func Encode(ctx context.Context, source, functionID string, pairs []string, ecosystem string) error {
	eco, err := schema.ParseEcosystem(ecosystem)
	if err != nil {
		return err
	}

	registry, err := newRegistry()
	if err != nil {
		return fmt.Errorf("failed to build adapter registry: %w", err)
	}
	adapter, err := registry.Get(eco)
	if err != nil {
		return err
	}
	if !adapter.Supports(adapters.CapFormatTransaction) {
		return fmt.Errorf("%w: %s does not support transaction encoding", errdefs.ErrNotSupported, eco)
	}

	var src adapters.ContractSource
	if name, ok := strings.CutPrefix(source, "builtin:"); ok {
		src.Builtin = name
	} else {
		raw, err := readFile(source)
		if err != nil {
			return fmt.Errorf("failed to read contract definition: %w", err)
		}
		src.Raw = raw
	}

	cs, err := adapter.LoadContract(ctx, src)
	if err != nil {
		return err
	}
	fn := cs.Function(functionID)
	if fn == nil {
		return errdefs.ConfigurationInvalid("function %q not found in contract", functionID)
	}

	inputs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return errdefs.ConfigurationInvalid("input %q is not name=value", pair)
		}
		inputs[name] = value
	}

	data, err := adapter.FormatTransactionData(fn, inputs)
	if err != nil {
		return err
	}

	fmt.Printf("0x%s\n", hex.EncodeToString(data))
	return nil
}
