// Package tui provides a Bubble Tea-based terminal UI for the export pipeline.
package tui

// PhaseMsg reports progress of export pipeline phases.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// ConflictMsg reports a dependency collision found during manifest merging.
type ConflictMsg struct {
	Package      string
	BaseRange    string
	AdapterRange string
	Disjoint     bool
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the export is complete.
type DoneMsg struct{ OutputPath string }
