// Package tui provides a Bubble Tea-based terminal UI for registration runs.
package tui

import "github.com/worldcoin/orb-registration/internal/provisioning"

// PhaseMsg reports progress of a provisioning phase.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// OrbMsg reports one orb that finished its registration steps.
type OrbMsg struct {
	ID      string
	Detail  string
	Existed bool
}

// LogMsg carries one log line for the tail view.
type LogMsg struct {
	Level string
	Line  string
}

// ProgressMsg reports item progress within a phase.
type ProgressMsg struct {
	Phase   string
	Current int
	Total   int
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries a fatal run error along with any partial state.
type ErrMsg struct {
	Err   error
	State *provisioning.State
}

// DoneMsg signals that the run is complete.
type DoneMsg struct {
	State *provisioning.State
}
