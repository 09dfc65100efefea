package provisioning

import (
	"fmt"
	"time"

	"github.com/worldcoin/orb-registration/internal/identity"
)

// Observer defines the interface for structured observability during a
// provisioning run. The console observer in internal/ui renders styled
// log lines; the TUI observer feeds a live progress model.
type Observer interface {
	// Infof logs an informational message.
	Infof(format string, v ...any)

	// Warnf logs a warning.
	Warnf(format string, v ...any)

	// Errorf logs an error.
	Errorf(format string, v ...any)

	// Event emits a structured event.
	Event(event Event)

	// Progress reports progress within a phase.
	Progress(phase string, current, total int)
}

// Event represents a structured provisioning event.
type Event struct {
	Type    EventType      // Type of event
	Phase   string         // Phase name (e.g., "base images", "orb 2/5")
	Orb     identity.OrbID // Orb the event concerns, if any
	Message string         // Human-readable message
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventOrbRegistered indicates an orb completed every registration step.
	EventOrbRegistered EventType = "orb.registered"
	// EventOrbExists indicates the management backend already knew the orb.
	EventOrbExists EventType = "orb.exists"
)

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogOrbRegistered logs the completed registration of one orb.
func LogOrbRegistered(observer Observer, phase string, id identity.OrbID, name string) {
	observer.Event(Event{
		Type:    EventOrbRegistered,
		Phase:   phase,
		Orb:     id,
		Message: fmt.Sprintf("registered as %s", name),
	})
}

// LogOrbExists logs that the management backend already knew an orb.
func LogOrbExists(observer Observer, phase string, id identity.OrbID, name string) {
	observer.Event(Event{
		Type:    EventOrbExists,
		Phase:   phase,
		Orb:     id,
		Message: fmt.Sprintf("already registered as %s", name),
	})
}
