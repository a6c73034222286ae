package schema

import (
	"github.com/txforge/txforge/internal/errdefs"
)

// Validate checks the invariants a finalized FormConfig must hold against the
// schema it was built from. It is called by the export pipeline before any
// file is generated, so a violation never produces partial output.
func (c *FormConfig) Validate(s *ContractSchema) error {
	if c == nil {
		return errdefs.ConfigurationInvalid("form config is not set")
	}
	if s == nil {
		return errdefs.ConfigurationInvalid("contract schema is not set")
	}
	if c.FunctionID == "" {
		return errdefs.ConfigurationInvalid("form config has no target function")
	}
	fn := s.Function(c.FunctionID)
	if fn == nil {
		return errdefs.ConfigurationInvalid("function %q not found in contract schema", c.FunctionID)
	}
	if len(c.Fields) != len(fn.Inputs) {
		return errdefs.ConfigurationInvalid("form has %d fields but function %q takes %d inputs",
			len(c.Fields), c.FunctionID, len(fn.Inputs))
	}
	switch c.Execution.Method {
	case ExecWallet:
	case ExecRelayer:
		if c.Execution.RelayerURL == "" {
			return errdefs.ConfigurationInvalid("relayer execution requires a relayer URL")
		}
	default:
		return errdefs.ConfigurationInvalid("unknown execution method %q", c.Execution.Method)
	}
	switch c.Validation {
	case ValidateOnBlur, ValidateOnChange, ValidateOnSubmit:
	default:
		return errdefs.ConfigurationInvalid("unknown validation mode %q", c.Validation)
	}
	return nil
}
