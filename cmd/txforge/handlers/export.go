package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/export"
	"github.com/txforge/txforge/internal/schema"
	"github.com/txforge/txforge/internal/ui/tui"
)

// Factory function variables for export - can be replaced in tests.
var (
	// loadProject loads the form configuration from file.
	loadProject = schema.LoadProject

	// writeArtifactDir writes the generated files to a directory.
	writeArtifactDir = export.WriteDir

	// packageArtifact packages the generated files as a zip archive.
	packageArtifact = export.Package

	// writeFile writes data to a file (for testing injection).
	writeFile = os.WriteFile

	// runExportTUI wraps the pipeline with the progress display.
	runExportTUI = tui.RunExportTUI

	// stdoutIsTTY reports whether stdout is a terminal.
	stdoutIsTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd())
	}
)

// Export turns a form configuration into a runnable React project.
//
// The configuration comes from configPath, or from the local config library
// when fromID is set. The pipeline validates the configuration, renders the
// project templates, merges the package manifest, and writes the result to
// outputPath (a directory, or a zip archive with asZip). When stdout is a
// terminal and plain is not set, progress is shown in a TUI.
func Export(ctx context.Context, configPath, fromID, outputPath string, asZip, plain bool) error {
	var p *schema.Project
	var err error
	if fromID != "" {
		p, err = loadSavedProject(fromID)
	} else {
		p, err = loadProject(configPath)
	}
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(p.Name, asZip)
	}

	registry, err := newRegistry()
	if err != nil {
		return fmt.Errorf("failed to build adapter registry: %w", err)
	}
	exporter := export.New(registry, logger)

	run := func(ch chan<- tea.Msg) (string, error) {
		return runPipeline(ctx, exporter, p, outputPath, asZip, ch)
	}

	if plain || !stdoutIsTTY() {
		out, err := run(nil)
		if err != nil {
			return exportError(err)
		}
		fmt.Printf("Exported %s to %s\n", p.Name, out)
		printExportNextSteps(out, asZip)
		return nil
	}

	if err := runExportTUI(run, p.Name, p.NetworkID); err != nil {
		return exportError(err)
	}
	fmt.Printf("Exported %s to %s\n", p.Name, outputPath)
	printExportNextSteps(outputPath, asZip)
	return nil
}

// runPipeline executes the export stages, reporting progress on ch when it
// is non-nil.
func runPipeline(ctx context.Context, exporter *export.Exporter, p *schema.Project, outputPath string, asZip bool, ch chan<- tea.Msg) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	send := func(msg tea.Msg) {
		if ch != nil {
			ch <- msg
		}
	}

	send(tui.PhaseMsg{Phase: "validate"})
	artifact, err := exporter.Export(p, export.Options{})
	if err != nil {
		send(tui.PhaseMsg{Phase: "validate", Err: err})
		return "", err
	}
	send(tui.PhaseMsg{Phase: "manifest", Done: true})

	for _, c := range artifact.Conflicts {
		send(tui.ConflictMsg{
			Package:      c.Name,
			BaseRange:    c.BaseRange,
			AdapterRange: c.AdapterRange,
			Disjoint:     c.Disjoint,
		})
		if ch == nil {
			fmt.Printf("Warning: dependency conflict on %s (base %s, adapter %s)\n",
				c.Name, c.BaseRange, c.AdapterRange)
		}
	}

	send(tui.PhaseMsg{Phase: "write"})
	if asZip {
		data, err := packageArtifact(artifact)
		if err != nil {
			send(tui.PhaseMsg{Phase: "write", Err: err})
			return "", err
		}
		if err := writeFile(outputPath, data, 0o600); err != nil {
			err = errdefs.ExportFailed("archive write", err)
			send(tui.PhaseMsg{Phase: "write", Err: err})
			return "", err
		}
	} else {
		if err := writeArtifactDir(artifact, outputPath); err != nil {
			send(tui.PhaseMsg{Phase: "write", Err: err})
			return "", err
		}
	}
	send(tui.PhaseMsg{Phase: "write", Done: true})

	return outputPath, nil
}

// loadSavedProject rebuilds a Project from a library entry.
func loadSavedProject(id string) (*schema.Project, error) {
	lib, err := openLibrary(defaultLibraryPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open config library: %w", err)
	}
	defer lib.Close()

	cfg, err := lib.Get(id)
	if err != nil {
		return nil, err
	}
	p := &schema.Project{
		Name:      cfg.Title,
		Ecosystem: cfg.Ecosystem,
		NetworkID: cfg.NetworkID,
		Contract:  cfg.Contract,
		Form:      cfg.Form,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// defaultOutputPath derives the output location from the project name.
func defaultOutputPath(name string, asZip bool) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	if slug == "" {
		slug = "txforge-export"
	}
	if asZip {
		return slug + ".zip"
	}
	return slug
}

// exportError attaches remediation guidance to network-shaped failures.
func exportError(err error) error {
	if errdefs.IsNetworkServiceError(err) {
		return fmt.Errorf("%w\n%s", err, errdefs.NetworkRemediation)
	}
	return err
}

func printExportNextSteps(outputPath string, asZip bool) {
	fmt.Println()
	fmt.Println("Next Steps")
	fmt.Println("----------")
	if asZip {
		fmt.Printf("  1. unzip %s\n", outputPath)
		fmt.Println("  2. npm install && npm run dev")
	} else {
		fmt.Printf("  1. cd %s\n", outputPath)
		fmt.Println("  2. npm install && npm run dev")
	}
	fmt.Println()
}
