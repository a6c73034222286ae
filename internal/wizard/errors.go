package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errProjectNameRequired = errors.New("project name is required")
	errProjectNameInvalid  = errors.New("project name must be 1-40 characters: letters, digits, spaces, or hyphens")
	errSourceRequired      = errors.New("contract definition is required (file path or builtin:<name>)")
	errAddressInvalid      = errors.New("address is not valid for the selected network")
	errRelayerURLInvalid   = errors.New("relayer URL must be an absolute http(s) URL")
	errTitleRequired       = errors.New("form title is required")
)
