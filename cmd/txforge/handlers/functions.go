package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/schema"
)

// readFile reads a contract definition file (for testing injection).
var readFile = os.ReadFile

// Functions loads a contract definition and prints its callable functions.
func Functions(ctx context.Context, source, ecosystem string) error {
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

	fmt.Printf("%s (%s)\n", cs.Name, cs.Ecosystem)
	fmt.Println()
	for _, fn := range cs.Functions {
		params := make([]string, 0, len(fn.Inputs))
		for _, in := range fn.Inputs {
			params = append(params, fmt.Sprintf("%s %s", in.Name, in.Type))
		}
		fmt.Printf("  %-12s %s(%s)\n", fn.StateMutability, fn.Name, strings.Join(params, ", "))
	}
	if len(cs.Events) > 0 {
		fmt.Println()
		fmt.Println("Events:")
		for _, ev := range cs.Events {
			fmt.Printf("  %s\n", ev.Name)
		}
	}
	return nil
}
