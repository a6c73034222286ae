// Package export turns a finalized form project into a self-contained
// React+Vite web project: static template files pass through unchanged,
// generated files are produced by placeholder substitution, and the npm
// manifest is assembled from the template's base dependencies plus the
// selected adapter's declarations.
//
// The pipeline performs no I/O beyond reading its embedded templates; it
// returns an in-memory artifact that the caller packages or writes out.
package export

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/txforge/txforge/internal/adapters"
	"github.com/txforge/txforge/internal/errdefs"
	"github.com/txforge/txforge/internal/export/codegen"
	"github.com/txforge/txforge/internal/export/manifest"
	"github.com/txforge/txforge/internal/networks"
	"github.com/txforge/txforge/internal/schema"
)

//go:embed templates
var templatesFS embed.FS

// Function variable for dependency injection in tests: the generated year in
// the README comes from this clock.
var timeNow = time.Now

// DefaultVariant is the only template variant currently shipped.
const DefaultVariant = "react-vite"

// tmplSuffix marks template files that go through placeholder substitution.
const tmplSuffix = ".tmpl"

// baseDependencies are the runtime npm packages every exported project needs
// before adapter dependencies are merged in.
var baseDependencies = manifest.DepSet{
	"react":     "^18.3.1",
	"react-dom": "^18.3.1",
}

// baseDevDependencies are the build-time npm packages of the template.
var baseDevDependencies = manifest.DepSet{
	"@types/react":         "^18.3.0",
	"@types/react-dom":     "^18.3.0",
	"@vitejs/plugin-react": "^4.3.0",
	"typescript":           "^5.5.0",
	"vite":                 "^5.4.0",
}

// Options configures one export invocation.
type Options struct {
	// Variant selects the base template set. Empty means DefaultVariant.
	Variant string
}

// Artifact is the result of a successful export: a mapping from relative
// file path to content, plus any dependency conflicts the manifest merge
// detected. It is consumed immediately and not persisted by the pipeline.
type Artifact struct {
	Files     map[string][]byte
	Conflicts []manifest.Conflict
}

// Paths returns the artifact's file paths sorted.
func (a *Artifact) Paths() []string {
	out := make([]string, 0, len(a.Files))
	for p := range a.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Exporter runs the export pipeline. Each invocation builds its own file
// map, so concurrent exports share no mutable state.
type Exporter struct {
	registry *adapters.Registry
	log      zerolog.Logger
}

// New creates an exporter backed by the given adapter registry.
func New(registry *adapters.Registry, log zerolog.Logger) *Exporter {
	return &Exporter{registry: registry, log: log.With().Str("component", "export").Logger()}
}

// Export validates the project and assembles the output file map. It fails
// before generating anything when a precondition is violated, and never
// returns a partial artifact.
func (e *Exporter) Export(p *schema.Project, opts Options) (*Artifact, error) {
	if p == nil || p.Form == nil {
		return nil, errdefs.ConfigurationInvalid("export requires a finalized form config")
	}
	if err := p.Form.Validate(p.Contract); err != nil {
		return nil, err
	}

	adapter, err := e.registry.Get(p.Ecosystem)
	if err != nil {
		return nil, errdefs.ConfigurationInvalid("%v", err)
	}

	net, err := networks.ByID(p.NetworkID)
	if err != nil {
		return nil, errdefs.ConfigurationInvalid("%v", err)
	}
	if net.Ecosystem != p.Ecosystem {
		return nil, errdefs.ConfigurationInvalid("network %q belongs to ecosystem %q, project targets %q",
			net.ID, net.Ecosystem, p.Ecosystem)
	}
	rpcURL, err := networks.ResolveRPCURL(net, p.RPCOverrides)
	if err != nil {
		return nil, errdefs.ConfigurationInvalid("%v", err)
	}

	variant := opts.Variant
	if variant == "" {
		variant = DefaultVariant
	}
	root := path.Join("templates", variant)
	if _, err := fs.Stat(templatesFS, root); err != nil {
		return nil, errdefs.ConfigurationInvalid("unknown template variant %q", variant)
	}

	values, err := substitutionValues(p, adapter, net.ID, rpcURL)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte)
	walkErr := fs.WalkDir(templatesFS, root, func(fp string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := templatesFS.ReadFile(fp)
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(fp, root+"/")

		if !strings.HasSuffix(rel, tmplSuffix) {
			// Static files, binary included, pass through unmodified.
			files[rel] = content
			return nil
		}

		tpl, err := codegen.Parse(rel, string(content))
		if err != nil {
			return err
		}
		rendered, err := tpl.Render(values)
		if err != nil {
			return err
		}
		files[outputPath(rel, p.Ecosystem)] = []byte(rendered)
		return nil
	})
	if walkErr != nil {
		return nil, errdefs.ExportFailed("template assembly", walkErr)
	}

	deps, conflicts := manifest.Merge(baseDependencies, adapter.Dependencies().Runtime)
	devDeps, devConflicts := manifest.Merge(baseDevDependencies, adapter.Dependencies().Dev)
	conflicts = append(conflicts, devConflicts...)
	for _, c := range conflicts {
		e.log.Warn().Str("package", c.Name).Bool("disjoint", c.Disjoint).Msg("dependency version conflict")
	}

	pkg, err := manifest.Render(p.Name, deps, devDeps)
	if err != nil {
		return nil, errdefs.ExportFailed("manifest", err)
	}
	files["package.json"] = pkg

	e.log.Debug().Int("files", len(files)).Str("variant", variant).Msg("export assembled")
	return &Artifact{Files: files, Conflicts: conflicts}, nil
}

// outputPath maps a template-relative path to its location in the exported
// project. The adapter wiring file lands under the ecosystem's directory so
// generated import paths stay stable.
func outputPath(rel string, eco schema.Ecosystem) string {
	out := strings.TrimSuffix(rel, tmplSuffix)
	if out == "src/adapters/adapter.ts" {
		return fmt.Sprintf("src/adapters/%s/adapter.ts", eco)
	}
	return out
}

// substitutionValues builds the placeholder value map. Complex values are
// serialized into JSON string literals so the exported app deserializes them
// at runtime without depending on the builder's types.
func substitutionValues(p *schema.Project, adapter adapters.Adapter, networkID, rpcURL string) (map[string]string, error) {
	formJSON, err := json.Marshal(p.Form)
	if err != nil {
		return nil, errdefs.ExportFailed("serialize form config", err)
	}
	schemaJSON, err := json.Marshal(p.Contract)
	if err != nil {
		return nil, errdefs.ExportFailed("serialize contract schema", err)
	}
	execJSON, err := json.Marshal(p.Form.Execution)
	if err != nil {
		return nil, errdefs.ExportFailed("serialize execution config", err)
	}

	return map[string]string{
		"project-name":         p.Name,
		"form-title":           p.Form.Title,
		"function-id":          p.Form.FunctionID,
		"ecosystem":            string(p.Ecosystem),
		"network-id":           networkID,
		"rpc-url":              rpcURL,
		"ui-kit-id":            p.Form.UIKit.ID,
		"adapter-package-name": adapter.PackageName(),
		"adapter-class-name":   adapter.TypeName(),
		"form-config-json":     strconv.Quote(string(formJSON)),
		"contract-schema-json": strconv.Quote(string(schemaJSON)),
		"execution-json":       strconv.Quote(string(execJSON)),
		"generated-year":       strconv.Itoa(timeNow().UTC().Year()),
	}, nil
}
