// Package wizard provides the interactive builder flow.
//
// The wizard walks the user through five steps — network, contract,
// function, fields, execution — using charmbracelet/huh forms. Answers flow
// through the shared state store; changing an upstream answer cascades a
// reset of the stale downstream answers. The main entry point is Run, which
// returns a Project ready for the export pipeline.
package wizard

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/schema"
	"github.com/txforge/txforge/internal/store"
)

// Wizard runs the interactive builder flow against a store and registry.
type Wizard struct {
	store    *store.Store
	registry *adapters.Registry
	log      zerolog.Logger

	// answers collected outside the store (not part of wizard state).
	projectName string
}

// New creates a wizard. The store is owned by the caller so observers (the
// TUI, tests) can subscribe before the flow starts.
func New(st *store.Store, registry *adapters.Registry, log zerolog.Logger) *Wizard {
	return &Wizard{store: st, registry: registry, log: log.With().Str("component", "wizard").Logger()}
}

// IsInteractive reports whether stdin is a terminal; the wizard refuses to
// run when it is not.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Run executes the wizard steps in order and assembles the resulting
// project. The context cancels the flow (Ctrl+C).
func (w *Wizard) Run(ctx context.Context) (*schema.Project, error) {
	if err := w.runProjectGroup(ctx); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	if err := w.runNetworkGroup(ctx); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	if err := w.runContractGroup(ctx); err != nil {
		return nil, fmt.Errorf("contract: %w", err)
	}

	if err := w.runFunctionGroup(ctx); err != nil {
		return nil, fmt.Errorf("function: %w", err)
	}

	if err := w.runFieldsGroup(ctx); err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}

	if err := w.runExecutionGroup(ctx); err != nil {
		return nil, fmt.Errorf("execution: %w", err)
	}

	if !w.store.StepValid(store.StepExecution) {
		return nil, fmt.Errorf("wizard finished with incomplete execution step")
	}

	return w.BuildProject(), nil
}

// BuildProject assembles a Project from the final store state.
func (w *Wizard) BuildProject() *schema.Project {
	st := w.store.GetState()
	return &schema.Project{
		Name:      w.projectName,
		Ecosystem: st.SelectedEcosystem,
		NetworkID: st.SelectedNetworkID,
		Contract:  st.ContractSchema,
		Form:      st.FormConfig,
	}
}
