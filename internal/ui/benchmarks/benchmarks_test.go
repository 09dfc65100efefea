package benchmarks

import (
	"testing"
	"time"
)

func TestExpected_PerUnitPhases(t *testing.T) {
	d, ok := Expected("orb 3/5")
	if !ok || d != 30*time.Second {
		t.Fatalf("expected orb default 30s, got %v (ok=%v)", d, ok)
	}
	d, ok = Expected("base images")
	if !ok || d != 45*time.Second {
		t.Fatalf("expected base images default 45s, got %v (ok=%v)", d, ok)
	}
	_, ok = Expected("unknown")
	if ok {
		t.Fatal("expected unknown phase duration to be absent")
	}
}

func TestEstimateRemaining_NoHistory(t *testing.T) {
	// At base images, 15s elapsed, two orbs pending
	remaining := EstimateRemaining("base images", 15*time.Second, []string{"orb 1/2", "orb 2/2"}, 1.0)

	// Should be: (45-15) + 30 + 30 = 90s
	expected := 90 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_ScaledByObservedSpeed(t *testing.T) {
	// Host runs at half speed: scale 2.0, fresh orb phase, one pending
	remaining := EstimateRemaining("orb 1/2", 0, []string{"orb 2/2"}, 2.0)

	// Should be: 30*2 + 30*2 = 120s
	expected := 120 * time.Second
	if remaining != expected {
		t.Errorf("expected %v, got %v", expected, remaining)
	}
}

func TestEstimateRemaining_ElapsedExceedsExpected(t *testing.T) {
	// Current phase overran its scaled estimate: no negative credit
	remaining := EstimateRemaining("orb 1/1", 90*time.Second, nil, 1.0)

	if remaining != 0 {
		t.Errorf("expected 0, got %v", remaining)
	}
}

func TestEstimateRemaining_UnknownPhase(t *testing.T) {
	remaining := EstimateRemaining("unknown", 0, nil, 1.0)
	if remaining != 0 {
		t.Errorf("expected 0 for unknown phase, got %v", remaining)
	}
}

func TestPerformanceScale(t *testing.T) {
	completed := []PhaseDuration{
		{Phase: "base images", Duration: 67500 * time.Millisecond},
	}

	// 67.5s observed against a 45s benchmark
	scale := PerformanceScale(completed, "orb 1/2", 0)
	if scale < 1.49 || scale > 1.51 {
		t.Fatalf("expected ~1.5 scale, got %f", scale)
	}
}

func TestPerformanceScale_NoHistory(t *testing.T) {
	scale := PerformanceScale(nil, "orb 1/2", 10*time.Second)
	if scale != 1.0 {
		t.Fatalf("expected neutral scale, got %f", scale)
	}
}

func TestPerformanceScale_OverrunningCurrentPhase(t *testing.T) {
	// 60s in a 30s phase folds in immediately: 60/30 = 2x
	scale := PerformanceScale(nil, "orb 1/1", 60*time.Second)
	if scale < 1.99 || scale > 2.01 {
		t.Fatalf("expected ~2.0 scale, got %f", scale)
	}
}

func TestPerformanceScale_Capped(t *testing.T) {
	completed := []PhaseDuration{
		{Phase: "base images", Duration: time.Hour},
	}

	scale := PerformanceScale(completed, "orb 1/1", 0)
	if scale != 3.0 {
		t.Fatalf("expected cap at 3.0, got %f", scale)
	}
}

func TestTotalEstimate(t *testing.T) {
	total := TotalEstimate([]string{"preflight", "base images", "orb 1/2", "orb 2/2"})

	// 2 + 45 + 30 + 30 = 107s
	expected := 107 * time.Second
	if total != expected {
		t.Errorf("expected %v, got %v", expected, total)
	}
}
