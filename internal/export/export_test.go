package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/adapters/evm"
	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/schema"
)

func testExporter(t *testing.T) *Exporter {
	t.Helper()
	reg, err := adapters.NewRegistry(evm.New(zerolog.Nop()))
	require.NoError(t, err)
	return New(reg, zerolog.Nop())
}

func evmSchema() *schema.ContractSchema {
	return &schema.ContractSchema{
		Ecosystem: schema.EcosystemEVM,
		Functions: []schema.ContractFunction{
			{ID: "approve", Name: "approve", Inputs: []schema.FunctionParam{
				{Name: "spender", Type: "address"},
				{Name: "amount", Type: "uint256"},
			}, StateMutability: schema.MutabilityWrite},
		},
	}
}

func evmProject() *schema.Project {
	s := evmSchema()
	return &schema.Project{
		Name:      "approve-form",
		Ecosystem: schema.EcosystemEVM,
		NetworkID: "ethereum-mainnet",
		Contract:  s,
		Form: &schema.FormConfig{
			FunctionID:      "approve",
			ContractAddress: "0x6B175474E89094C44Da98b954EedeAC495271d0F",
			Title:           "Approve Spending",
			Fields:          schema.DefaultFields(schema.EcosystemEVM, &s.Functions[0]),
			Layout:          "single-column",
			Validation:      schema.ValidateOnBlur,
			Execution:       schema.ExecutionConfig{Method: schema.ExecWallet},
			UIKit:           schema.UIKitConfig{ID: "rainbowkit"},
		},
	}
}

func withFixedClock(t *testing.T) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = orig })
}

func TestExportProducesFixedLayout(t *testing.T) {
	withFixedClock(t)
	art, err := testExporter(t).Export(evmProject(), Options{})
	require.NoError(t, err)

	want := []string{
		"README.md",
		"index.html",
		"package.json",
		"src/App.tsx",
		"src/adapters/evm/adapter.ts",
		"src/components/GeneratedForm.tsx",
		"src/main.tsx",
		"src/styles.css",
		"tsconfig.json",
		"vite.config.ts",
	}
	assert.Equal(t, want, art.Paths())
	assert.Empty(t, art.Conflicts)
}

func TestExportGeneratedContent(t *testing.T) {
	withFixedClock(t)
	art, err := testExporter(t).Export(evmProject(), Options{})
	require.NoError(t, err)

	app := string(art.Files["src/App.tsx"])
	assert.Contains(t, app, "<h1>Approve Spending</h1>")
	assert.NotContains(t, app, "@@", "no unsubstituted placeholders remain")

	wiring := string(art.Files["src/adapters/evm/adapter.ts"])
	assert.Contains(t, wiring, "EvmAdapter")
	assert.Contains(t, wiring, "@txforge/adapter-evm")
	assert.Contains(t, wiring, "ethereum-mainnet")
	assert.Contains(t, wiring, "rainbowkit")

	readme := string(art.Files["README.md"])
	assert.Contains(t, readme, "2026")
	assert.Contains(t, readme, "`approve`")
}

func TestExportIdempotent(t *testing.T) {
	withFixedClock(t)
	e := testExporter(t)

	first, err := e.Export(evmProject(), Options{})
	require.NoError(t, err)
	second, err := e.Export(evmProject(), Options{})
	require.NoError(t, err)

	require.Equal(t, first.Paths(), second.Paths())
	for _, p := range first.Paths() {
		assert.Equal(t, first.Files[p], second.Files[p], "file %s differs between runs", p)
	}
}

func TestExportEmbeddedJSONRoundTrip(t *testing.T) {
	withFixedClock(t)
	p := evmProject()
	art, err := testExporter(t).Export(p, Options{})
	require.NoError(t, err)

	form := string(art.Files["src/components/GeneratedForm.tsx"])
	// Extract the embedded string literal passed to JSON.parse, then
	// replicate the exported app's runtime parse.
	marker := "JSON.parse("
	idx := strings.Index(form, marker)
	require.GreaterOrEqual(t, idx, 0)
	rest := form[idx+len(marker):]
	literal := rest[:strings.Index(rest, ")")]

	jsonText, err := strconv.Unquote(literal)
	require.NoError(t, err)

	var decoded schema.FormConfig
	require.NoError(t, json.Unmarshal([]byte(jsonText), &decoded))
	assert.Equal(t, *p.Form, decoded)
}

func TestExportManifestMergesAdapterDeps(t *testing.T) {
	withFixedClock(t)
	art, err := testExporter(t).Export(evmProject(), Options{})
	require.NoError(t, err)

	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	require.NoError(t, json.Unmarshal(art.Files["package.json"], &pkg))

	// Base and adapter entries coexist with their versions preserved.
	assert.Equal(t, "^18.3.1", pkg.Dependencies["react"])
	assert.Equal(t, "^2.21.0", pkg.Dependencies["viem"])
	assert.Equal(t, "^2.12.0", pkg.Dependencies["wagmi"])
	assert.Equal(t, "^5.4.0", pkg.DevDependencies["vite"])
}

func TestExportNilFormConfig(t *testing.T) {
	p := evmProject()
	p.Form = nil

	art, err := testExporter(t).Export(p, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))
	assert.Nil(t, art, "no files may be produced")
}

func TestExportUnknownFunction(t *testing.T) {
	p := evmProject()
	p.Form.FunctionID = "transfer" // schema only has approve

	art, err := testExporter(t).Export(p, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))
	assert.Nil(t, art)
}

func TestExportUnknownVariantAndNetwork(t *testing.T) {
	e := testExporter(t)

	_, err := e.Export(evmProject(), Options{Variant: "svelte"})
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))

	p := evmProject()
	p.NetworkID = "nope"
	_, err = e.Export(p, Options{})
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))

	p = evmProject()
	p.NetworkID = "solana-mainnet" // wrong ecosystem for an EVM project
	_, err = e.Export(p, Options{})
	assert.True(t, errors.Is(err, errdefs.ErrConfigurationInvalid))
}

func TestExportRejectsDelimiterInValues(t *testing.T) {
	p := evmProject()
	p.Form.Title = "@@evil@@"

	art, err := testExporter(t).Export(p, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errdefs.ErrExportFailed))
	assert.Nil(t, art, "corrupted source must not be emitted")
}

func TestPackageZipRoundTrip(t *testing.T) {
	withFixedClock(t)
	art, err := testExporter(t).Export(evmProject(), Options{})
	require.NoError(t, err)

	blob, err := Package(art)
	require.NoError(t, err)

	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	assert.Len(t, r.File, len(art.Files))

	// Packaging is deterministic too.
	again, err := Package(art)
	require.NoError(t, err)
	assert.Equal(t, blob, again)
}

func TestWriteDir(t *testing.T) {
	withFixedClock(t)
	art, err := testExporter(t).Export(evmProject(), Options{})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteDir(art, dir))

	for _, p := range art.Paths() {
		assert.FileExists(t, dir+"/"+p)
	}
}
