package schema

import (
	"strconv"
	"strings"
)

// FieldType is the widget type of one generated form field.
type FieldType string

// Field types understood by the generated form renderer.
const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldAddress  FieldType = "address"
	FieldCheckbox FieldType = "checkbox"
	FieldBytes    FieldType = "bytes"
	FieldAmount   FieldType = "amount"
)

// ValidationMode controls when the generated form validates its fields.
type ValidationMode string

// Validation modes for the generated form.
const (
	ValidateOnBlur   ValidationMode = "onBlur"
	ValidateOnChange ValidationMode = "onChange"
	ValidateOnSubmit ValidationMode = "onSubmit"
)

// ExecutionMethod selects how the exported form submits transactions.
type ExecutionMethod string

// Execution methods.
const (
	ExecWallet  ExecutionMethod = "wallet"
	ExecRelayer ExecutionMethod = "relayer"
)

// FormField describes one input field of the generated form.
type FormField struct {
	// Name is the parameter name the field binds to.
	Name        string    `json:"name" yaml:"name" mapstructure:"name"`
	Label       string    `json:"label" yaml:"label" mapstructure:"label"`
	Type        FieldType `json:"type" yaml:"type" mapstructure:"type"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty" mapstructure:"placeholder"`
	HelpText    string    `json:"helpText,omitempty" yaml:"help_text,omitempty" mapstructure:"help_text"`
	Required    bool      `json:"required" yaml:"required" mapstructure:"required"`
	// ParamType preserves the chain-native type for runtime encoding.
	ParamType string `json:"paramType" yaml:"param_type" mapstructure:"param_type"`
}

// ExecutionConfig describes how the exported form executes transactions.
type ExecutionConfig struct {
	Method ExecutionMethod `json:"method" yaml:"method" mapstructure:"method"`
	// RelayerURL is the relayer endpoint; only set when Method is relayer.
	RelayerURL string `json:"relayerUrl,omitempty" yaml:"relayer_url,omitempty" mapstructure:"relayer_url"`
}

// UIKitConfig selects the wallet-connection UI kit wired into the export.
type UIKitConfig struct {
	// ID matches a UIKitDescriptor offered by the selected adapter.
	ID string `json:"id" yaml:"id" mapstructure:"id"`
	// Theme is kit-specific and passed through to the generated wiring.
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty" mapstructure:"theme"`
}

// FormConfig is the finalized description of one generated form. It is
// immutable once handed to the export pipeline.
type FormConfig struct {
	FunctionID      string          `json:"functionId" yaml:"function_id" mapstructure:"function_id"`
	ContractAddress string          `json:"contractAddress" yaml:"contract_address" mapstructure:"contract_address"`
	Title           string          `json:"title" yaml:"title" mapstructure:"title"`
	Description     string          `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Fields          []FormField     `json:"fields" yaml:"fields" mapstructure:"fields"`
	Layout          string          `json:"layout" yaml:"layout" mapstructure:"layout"`
	Validation      ValidationMode  `json:"validation" yaml:"validation" mapstructure:"validation"`
	Execution       ExecutionConfig `json:"execution" yaml:"execution" mapstructure:"execution"`
	UIKit           UIKitConfig     `json:"uiKit" yaml:"ui_kit" mapstructure:"ui_kit"`
}

// evmFieldTypes maps EVM base types to form field types. Sized integer types
// are matched by prefix in fieldTypeFor.
var evmFieldTypes = map[string]FieldType{
	"address": FieldAddress,
	"bool":    FieldCheckbox,
	"string":  FieldText,
	"bytes":   FieldBytes,
}

// solanaFieldTypes maps common IDL types to form field types.
var solanaFieldTypes = map[string]FieldType{
	"publicKey": FieldAddress,
	"pubkey":    FieldAddress,
	"bool":      FieldCheckbox,
	"string":    FieldText,
	"bytes":     FieldBytes,
}

// fieldTypeFor picks a field widget for a chain-native parameter type.
func fieldTypeFor(eco Ecosystem, paramType string) FieldType {
	switch eco {
	case EcosystemEVM:
		if ft, ok := evmFieldTypes[paramType]; ok {
			return ft
		}
		if hasIntPrefix(paramType) {
			return FieldNumber
		}
		if strings.HasPrefix(paramType, "bytes") {
			return FieldBytes
		}
	case EcosystemSolana:
		if ft, ok := solanaFieldTypes[paramType]; ok {
			return ft
		}
		if hasIntPrefix(paramType) || paramType == "u64" || paramType == "u128" ||
			paramType == "u8" || paramType == "u16" || paramType == "u32" ||
			paramType == "i64" || paramType == "i128" || paramType == "f64" {
			return FieldNumber
		}
	case EcosystemStellar:
		switch paramType {
		case "address":
			return FieldAddress
		case "bool":
			return FieldCheckbox
		case "i128", "u128", "i64", "u64", "u32", "i32":
			return FieldNumber
		}
	}
	return FieldText
}

func hasIntPrefix(t string) bool {
	return strings.HasPrefix(t, "int") || strings.HasPrefix(t, "uint")
}

// DefaultFields derives the default field list for a function: one field per
// input parameter, labeled from the parameter name, all required. User
// customizations are merged on top by MergeFields.
func DefaultFields(eco Ecosystem, fn *ContractFunction) []FormField {
	fields := make([]FormField, 0, len(fn.Inputs))
	for i, in := range fn.Inputs {
		name := in.Name
		if name == "" {
			name = "arg" + strconv.Itoa(i)
		}
		fields = append(fields, FormField{
			Name:      name,
			Label:     humanizeLabel(name),
			Type:      fieldTypeFor(eco, in.Type),
			Required:  true,
			ParamType: in.Type,
		})
	}
	return fields
}

// MergeFields overlays user customizations onto the derived defaults. Fields
// are matched by name; customized label, placeholder, help text, and required
// flag win, while the derived type and param type are kept unless the user
// set an explicit type.
func MergeFields(defaults, custom []FormField) []FormField {
	byName := make(map[string]FormField, len(custom))
	for _, f := range custom {
		byName[f.Name] = f
	}

	merged := make([]FormField, len(defaults))
	copy(merged, defaults)
	for i := range merged {
		c, ok := byName[merged[i].Name]
		if !ok {
			continue
		}
		if c.Label != "" {
			merged[i].Label = c.Label
		}
		if c.Placeholder != "" {
			merged[i].Placeholder = c.Placeholder
		}
		if c.HelpText != "" {
			merged[i].HelpText = c.HelpText
		}
		if c.Type != "" {
			merged[i].Type = c.Type
		}
		merged[i].Required = c.Required || merged[i].Required && !c.explicitOptional()
	}
	return merged
}

// explicitOptional reports whether the customization explicitly marked the
// field optional. A zero-value Required on a customization that set any other
// property is treated as "make optional".
func (f FormField) explicitOptional() bool {
	return !f.Required && (f.Label != "" || f.Placeholder != "" || f.HelpText != "" || f.Type != "")
}

// humanizeLabel turns a camelCase or snake_case parameter name into a label:
// "recipientAddress" -> "Recipient Address", "token_id" -> "Token Id".
func humanizeLabel(name string) string {
	if name == "" {
		return ""
	}
	var out []rune
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_' || r == '-':
			out = append(out, ' ')
			prevLower = false
			continue
		case r >= 'A' && r <= 'Z' && prevLower:
			out = append(out, ' ', r)
			prevLower = false
			continue
		}
		prevLower = r >= 'a' && r <= 'z'
		out = append(out, r)
	}
	// Uppercase word starts.
	up := true
	for i, r := range out {
		if up && r >= 'a' && r <= 'z' {
			out[i] = r - 'a' + 'A'
		}
		up = r == ' '
	}
	return string(out)
}
