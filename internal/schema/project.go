package schema

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Project is the on-disk description of one form project (txforge.yaml).
// It carries everything the export pipeline needs: the ecosystem, the
// network, the loaded contract schema, and the finalized form config.
type Project struct {
	Name      string          `yaml:"name" mapstructure:"name"`
	Ecosystem Ecosystem       `yaml:"ecosystem" mapstructure:"ecosystem"`
	NetworkID string          `yaml:"network" mapstructure:"network"`
	Contract  *ContractSchema `yaml:"contract" mapstructure:"contract"`
	Form      *FormConfig     `yaml:"form" mapstructure:"form"`
	// RPCOverrides maps network ids to replacement RPC URLs.
	RPCOverrides map[string]string `yaml:"rpc_overrides,omitempty" mapstructure:"rpc_overrides"`
}

// LoadProject reads and parses a project file, applying defaults and
// validating the result.
func LoadProject(path string) (*Project, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var p Project
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &p,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}

	p.applyDefaults()

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("project validation failed: %w", err)
	}
	return &p, nil
}

// applyDefaults fills fields that may be omitted from hand-edited files.
func (p *Project) applyDefaults() {
	if p.Form == nil {
		return
	}
	if p.Form.Layout == "" {
		p.Form.Layout = "single-column"
	}
	if p.Form.Validation == "" {
		p.Form.Validation = ValidateOnBlur
	}
	if p.Form.Execution.Method == "" {
		p.Form.Execution.Method = ExecWallet
	}
}

// Validate checks the project's internal consistency.
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if !p.Ecosystem.Valid() {
		return fmt.Errorf("unknown ecosystem %q", p.Ecosystem)
	}
	if p.Contract == nil {
		return fmt.Errorf("project has no contract schema")
	}
	if p.Form == nil {
		return fmt.Errorf("project has no form config")
	}
	return p.Form.Validate(p.Contract)
}

// WriteProject marshals the project to YAML with a descriptive header.
func WriteProject(p *Project, outputPath string) error {
	yamlBytes, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	header := fmt.Sprintf("# %s\n# Generated by txforge init. Edit and re-run `txforge export --config %s`.\n\n",
		outputPath, outputPath)

	if err := os.WriteFile(outputPath, append([]byte(header), yamlBytes...), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
