// Package errdefs defines the error categories shared across the builder.
//
// Errors are classified into four kinds: configuration errors caught before
// any side effect, adapter operation failures, export failures after
// validation passed, and network service errors detected from message
// content. Callers use errors.Is against the sentinel for each kind.
package errdefs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the builder's error taxonomy.
var (
	// ErrConfigurationInvalid marks a precondition violation detected before
	// any side effect (missing function id, malformed network id, export
	// requested with incomplete wizard state).
	ErrConfigurationInvalid = errors.New("configuration invalid")

	// ErrAdapterOperationFailed marks a failed adapter call such as a
	// contract load or address validation.
	ErrAdapterOperationFailed = errors.New("adapter operation failed")

	// ErrExportFailed marks a template assembly or packaging failure that
	// occurred after input validation passed.
	ErrExportFailed = errors.New("export failed")

	// ErrNotSupported marks an adapter capability the selected chain does
	// not implement.
	ErrNotSupported = errors.New("operation not supported")
)

// ConfigurationInvalid wraps ErrConfigurationInvalid with a formatted message.
func ConfigurationInvalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfigurationInvalid, fmt.Sprintf(format, args...))
}

// AdapterOperationFailed wraps an adapter error with its sentinel.
func AdapterOperationFailed(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrAdapterOperationFailed, op, err)
}

// ExportFailed wraps a pipeline error with its sentinel.
func ExportFailed(stage string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrExportFailed, stage, err)
}

// networkErrorMarkers are substrings that indicate RPC or explorer
// connectivity problems rather than a bad contract or user input.
var networkErrorMarkers = []string{
	"connection refused",
	"connection reset",
	"no such host",
	"i/o timeout",
	"network is unreachable",
	"tls handshake",
	"bad gateway",
	"service unavailable",
	"too many requests",
	"rate limit",
}

// IsNetworkServiceError reports whether an error looks like an RPC or
// explorer connectivity failure. Detection is heuristic, based on message
// content, and drives a remediation hint pointing the user at network
// settings instead of a generic failure message.
func IsNetworkServiceError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range networkErrorMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// NetworkRemediation is the hint shown when IsNetworkServiceError matches.
const NetworkRemediation = "the network endpoint could not be reached; check your RPC URL override (txforge networks) or your connection"
