// Package wizard provides an interactive configuration wizard for the
// registration station.
//
// This package implements a TUI-based wizard that guides operators
// through creating a station configuration file. It uses
// charmbracelet/huh for form-based input collection.
//
// The main entry point is RunWizard, which orchestrates question groups
// and returns a Result. Result.ToConfig converts the answers into a
// Config; config.Write produces the YAML output file.
package wizard
