// Package benchmarks provides timing estimates for registration phases.
package benchmarks

import (
	"strings"
	"time"
)

// DefaultTimings are median phase durations observed on the reference
// provisioning host (seconds).
var DefaultTimings = map[string]int{
	"preflight":   2,
	"base images": 45,
	"orb":         30,
	"batch ids":   20,
	"batch pairs": 10,
}

// Expected returns the benchmark duration for a phase name. Per-unit
// phases ("orb 2/5") share the "orb" timing.
func Expected(phase string) (time.Duration, bool) {
	key := phase
	if strings.HasPrefix(phase, "orb ") {
		key = "orb"
	}
	secs, ok := DefaultTimings[key]
	if !ok {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// PhaseDuration records how long a completed phase took.
type PhaseDuration struct {
	Phase    string
	Duration time.Duration
}

// PerformanceScale derives a speed multiplier from observed-vs-expected
// durations. Example: expected 30s, observed 45s => scale=1.5 (future
// estimates are stretched by 50%).
func PerformanceScale(completed []PhaseDuration, currentPhase string, phaseElapsed time.Duration) float64 {
	var expectedTotal time.Duration
	var actualTotal time.Duration

	for _, rec := range completed {
		expected, ok := Expected(rec.Phase)
		if !ok || rec.Duration <= 0 {
			continue
		}
		expectedTotal += expected
		actualTotal += rec.Duration
	}

	// If the current phase is overrunning, fold it in immediately so the
	// estimate adapts quickly.
	if expected, ok := Expected(currentPhase); ok && phaseElapsed > expected {
		expectedTotal += expected
		actualTotal += phaseElapsed
	}

	if expectedTotal == 0 || actualTotal == 0 {
		return 1.0
	}

	scale := float64(actualTotal) / float64(expectedTotal)
	if scale < 0.6 {
		return 0.6
	}
	if scale > 3.0 {
		return 3.0
	}
	return scale
}

// EstimateRemaining calculates the time left for the current phase plus
// the phases still pending, stretched by the performance scale.
func EstimateRemaining(currentPhase string, phaseElapsed time.Duration, pending []string, scale float64) time.Duration {
	var remaining time.Duration

	if expected, ok := Expected(currentPhase); ok {
		expectedDur := time.Duration(float64(expected) * scale)
		if expectedDur > phaseElapsed {
			remaining += expectedDur - phaseElapsed
		}
	}

	for _, phase := range pending {
		if expected, ok := Expected(phase); ok {
			remaining += time.Duration(float64(expected) * scale)
		}
	}

	return remaining
}

// TotalEstimate returns the estimated duration of a full run over the
// given phases.
func TotalEstimate(phases []string) time.Duration {
	var total time.Duration
	for _, phase := range phases {
		if expected, ok := Expected(phase); ok {
			total += expected
		}
	}
	return total
}
