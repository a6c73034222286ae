package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/schema"
	"github.com/txforge/txforge/internal/storage"
	"github.com/txforge/txforge/internal/store"
	"github.com/txforge/txforge/internal/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// isInteractive reports whether stdin is a terminal.
	isInteractive = wizard.IsInteractive

	// runWizard runs the interactive builder flow.
	runWizard = func(ctx context.Context, st *store.Store, registry *adapters.Registry) (*schema.Project, error) {
		return wizard.New(st, registry, logger).Run(ctx)
	}

	// writeProject writes the project config to a file.
	writeProject = schema.WriteProject

	// openLibrary opens the local config library.
	openLibrary = func(dir string) (*storage.Library, error) {
		return storage.Open(dir, logger)
	}
)

// Init runs the form configuration wizard and writes the result to a file.
// With save set, the result is also stored in the local config library.
func Init(ctx context.Context, outputPath string, save bool) error {
	if !isInteractive() {
		return fmt.Errorf("init requires an interactive terminal; write %s by hand or run in a TTY", outputPath)
	}

	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	registry, err := newRegistry()
	if err != nil {
		return fmt.Errorf("failed to build adapter registry: %w", err)
	}

	project, err := runWizard(ctx, store.New(), registry)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := writeProject(project, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if save {
		if err := saveToLibrary(project); err != nil {
			return err
		}
	}

	printInitSuccess(outputPath, project)

	return nil
}

func saveToLibrary(p *schema.Project) error {
	lib, err := openLibrary(defaultLibraryPath())
	if err != nil {
		return fmt.Errorf("failed to open config library: %w", err)
	}
	defer lib.Close()

	cfg := &storage.SavedConfig{
		Title:     p.Form.Title,
		Ecosystem: p.Ecosystem,
		NetworkID: p.NetworkID,
		Contract:  p.Contract,
		Form:      p.Form,
	}
	if err := lib.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("Saved to config library as %s\n", cfg.ID)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("txforge - Transaction Forms Without Code")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("This wizard builds a transaction form configuration step by step.")
	fmt.Println("Changing an earlier answer resets the answers that depend on it.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, p *schema.Project) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Form Summary")
	fmt.Println("------------")
	fmt.Printf("  Project:   %s\n", p.Name)
	fmt.Printf("  Ecosystem: %s\n", p.Ecosystem)
	fmt.Printf("  Network:   %s\n", p.NetworkID)
	if p.Contract != nil {
		fmt.Printf("  Contract:  %s\n", p.Contract.Name)
	}
	if p.Form != nil {
		fmt.Printf("  Function:  %s\n", p.Form.FunctionID)
		fmt.Printf("  Fields:    %d\n", len(p.Form.Fields))
		fmt.Printf("  Execution: %s\n", p.Form.Execution.Method)
	}
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  2. Export the project:")
	fmt.Printf("     txforge export --config %s\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Run it:")
	fmt.Println("     cd <project> && npm install && npm run dev")
	fmt.Println()
}
