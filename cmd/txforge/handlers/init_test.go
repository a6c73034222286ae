package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/schema"
	"github.com/txforge/txforge/internal/store"
)

// saveAndRestoreInitFactories saves and restores init factory functions.
func saveAndRestoreInitFactories(t *testing.T) {
	origFileExists := fileExists
	origIsInteractive := isInteractive
	origRunWizard := runWizard
	origWriteProject := writeProject

	t.Cleanup(func() {
		fileExists = origFileExists
		isInteractive = origIsInteractive
		runWizard = origRunWizard
		writeProject = origWriteProject
	})
}

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func initTestProject() *schema.Project {
	return &schema.Project{
		Name:      "my-transfer-form",
		Ecosystem: schema.EcosystemEVM,
		NetworkID: "ethereum-mainnet",
		Contract:  &schema.ContractSchema{Name: "ERC20", Ecosystem: schema.EcosystemEVM},
		Form: &schema.FormConfig{
			FunctionID: "transfer",
			Title:      "Transfer Form",
			Execution:  schema.ExecutionConfig{Method: schema.ExecWallet},
		},
	}
}

func TestInit_NotInteractive(t *testing.T) {
	saveAndRestoreInitFactories(t)
	isInteractive = func() bool { return false }

	err := Init(context.Background(), "txforge.yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestInit_WritesProject(t *testing.T) {
	saveAndRestoreInitFactories(t)
	isInteractive = func() bool { return true }
	fileExists = func(string) bool { return false }
	runWizard = func(_ context.Context, _ *store.Store, _ *adapters.Registry) (*schema.Project, error) {
		return initTestProject(), nil
	}

	var wrotePath string
	var wrote *schema.Project
	writeProject = func(p *schema.Project, path string) error {
		wrote = p
		wrotePath = path
		return nil
	}

	output := captureOutput(func() {
		err := Init(context.Background(), "out.yaml", false)
		require.NoError(t, err)
	})

	assert.Equal(t, "out.yaml", wrotePath)
	require.NotNil(t, wrote)
	assert.Equal(t, "my-transfer-form", wrote.Name)
	assert.Contains(t, output, "Configuration saved!")
	assert.Contains(t, output, "txforge export --config out.yaml")
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreInitFactories(t)
	isInteractive = func() bool { return true }
	fileExists = func(string) bool { return false }
	runWizard = func(_ context.Context, _ *store.Store, _ *adapters.Registry) (*schema.Project, error) {
		return nil, errors.New("user aborted")
	}

	captureOutput(func() {
		err := Init(context.Background(), "out.yaml", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wizard canceled")
	})
}

func TestInit_OverwriteWarning(t *testing.T) {
	saveAndRestoreInitFactories(t)
	isInteractive = func() bool { return true }
	fileExists = func(string) bool { return true }
	runWizard = func(_ context.Context, _ *store.Store, _ *adapters.Registry) (*schema.Project, error) {
		return initTestProject(), nil
	}
	writeProject = func(*schema.Project, string) error { return nil }

	output := captureOutput(func() {
		err := Init(context.Background(), "out.yaml", false)
		require.NoError(t, err)
	})

	assert.Contains(t, output, "already exists and will be overwritten")
}

func TestPrintWelcome(t *testing.T) {
	output := captureOutput(printWelcome)
	assert.Contains(t, output, "txforge - Transaction Forms Without Code")
}

func TestPrintInitSuccess(t *testing.T) {
	output := captureOutput(func() {
		printInitSuccess("out.yaml", initTestProject())
	})

	assert.Contains(t, output, "File: out.yaml")
	assert.Contains(t, output, "my-transfer-form")
	assert.Contains(t, output, "ethereum-mainnet")
	assert.Contains(t, output, "transfer")
	assert.Contains(t, output, "Next Steps")
}
