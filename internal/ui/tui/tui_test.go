package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/worldcoin/orb-registration/internal/provisioning"
)

func registerModel() Model {
	return NewRegisterModel("stage", "pearl", []string{"base images", "orb 1/2", "orb 2/2"})
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m30s"},
		{3600 * time.Second, "1h0m"},
		{3661 * time.Second, "1h1m"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCalculateProgress_Done(t *testing.T) {
	m := Model{Done: true}
	p := calculateProgress(m)
	if p != 1.0 {
		t.Errorf("expected 1.0, got %v", p)
	}
}

func TestCalculateProgress_Phases(t *testing.T) {
	m := registerModel()
	m.Phases[0].Done = true

	p := calculateProgress(m)
	expected := 1.0 / 3.0
	if p < expected-0.01 || p > expected+0.01 {
		t.Errorf("expected ~%v, got %v", expected, p)
	}
}

func TestCalculateProgress_ItemProgress(t *testing.T) {
	m := NewRegisterModel("stage", "diamond", []string{"batch ids"})
	m.Phases[0].Active = true
	m.ProgressPhase = "batch ids"
	m.ProgressCurrent = 3
	m.ProgressTotal = 4

	p := calculateProgress(m)
	expected := 2.0 / 4.0
	if p < expected-0.01 || p > expected+0.01 {
		t.Errorf("expected ~%v, got %v", expected, p)
	}
}

func TestModelUpdatePhase(t *testing.T) {
	m := registerModel()

	// Start base images
	m.updatePhase(PhaseMsg{Phase: "base images"})
	if !m.Phases[0].Active {
		t.Error("expected base images to be active")
	}

	// Complete base images
	m.updatePhase(PhaseMsg{Phase: "base images", Done: true})
	if !m.Phases[0].Done {
		t.Error("expected base images to be done")
	}
	if m.Phases[0].Active {
		t.Error("expected base images to not be active after done")
	}

	// Start first orb
	m.updatePhase(PhaseMsg{Phase: "orb 1/2"})
	if !m.Phases[1].Active {
		t.Error("expected orb 1/2 to be active")
	}
}

func TestModelUpdatePhase_MarksPriorDone(t *testing.T) {
	m := registerModel()

	m.updatePhase(PhaseMsg{Phase: "orb 2/2"})

	if !m.Phases[0].Done || !m.Phases[1].Done {
		t.Error("expected earlier phases to be marked done")
	}
	if !m.Phases[2].Active {
		t.Error("expected orb 2/2 to be active")
	}
}

func TestModelUpdatePhase_AppendsUnknown(t *testing.T) {
	m := registerModel()

	m.updatePhase(PhaseMsg{Phase: "preflight"})

	if len(m.Phases) != 4 {
		t.Fatalf("expected 4 phases, got %d", len(m.Phases))
	}
	if !m.Phases[3].Active {
		t.Error("expected appended phase to be active")
	}
}

func TestModelUpdatePhase_Error(t *testing.T) {
	m := registerModel()

	m.updatePhase(PhaseMsg{Phase: "orb 1/2", Err: errors.New("boom")})

	if m.Phases[1].Err == nil {
		t.Error("expected phase error to be recorded")
	}
	if m.Phases[1].Active {
		t.Error("expected failed phase to not be active")
	}
}

func TestModelUpdate_DoneCarriesState(t *testing.T) {
	m := registerModel()
	state := provisioning.NewState()
	state.Registered = append(state.Registered, "abcdef12")

	updated, cmd := m.Update(DoneMsg{State: state})

	fm := updated.(Model)
	if !fm.Done {
		t.Error("expected Done to be set")
	}
	if fm.State == nil || len(fm.State.Registered) != 1 {
		t.Error("expected state to be carried")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModelUpdate_LogTail(t *testing.T) {
	m := registerModel()

	for i := 0; i < logTail+4; i++ {
		updated, _ := m.Update(LogMsg{Level: "info", Line: "line"})
		m = updated.(Model)
	}

	if len(m.Log) != logTail {
		t.Errorf("expected log tail of %d lines, got %d", logTail, len(m.Log))
	}
}

func TestRenderView_Header(t *testing.T) {
	m := registerModel()
	m.StartTime = time.Now()

	output := renderView(m)

	if !strings.Contains(output, "stage/pearl") {
		t.Error("expected backend and platform in output")
	}
}

func TestRenderView_Phases(t *testing.T) {
	m := registerModel()
	m.StartTime = time.Now()
	m.Phases[0].Done = true
	m.Phases[1].Active = true

	output := renderView(m)

	if !strings.Contains(output, "base images") {
		t.Error("expected base images phase in output")
	}
	if !strings.Contains(output, "orb 1/2") {
		t.Error("expected orb phase in output")
	}
	if !strings.Contains(output, checkMark) {
		t.Error("expected check mark for done phase")
	}
}

func TestRenderView_Registered(t *testing.T) {
	m := registerModel()
	m.StartTime = time.Now()
	m.Registered = []Orb{
		{ID: "abcdef12", Detail: "registered as hopeful-mongoose"},
		{ID: "deadbeef", Detail: "already registered as subtle-ocelot", Existed: true},
	}

	output := renderView(m)

	if !strings.Contains(output, "abcdef12") {
		t.Error("expected orb id in output")
	}
	if !strings.Contains(output, "hopeful-mongoose") {
		t.Error("expected orb name in output")
	}
	if !strings.Contains(output, warnMark) {
		t.Error("expected warn mark for existing orb")
	}
}

func TestRenderView_LogTail(t *testing.T) {
	m := registerModel()
	m.StartTime = time.Now()
	m.Log = []LogMsg{{Level: "warn", Line: "optional tool pigz not found"}}

	output := renderView(m)

	if !strings.Contains(output, "optional tool pigz not found") {
		t.Error("expected log line in output")
	}
}

func TestRenderView_ProgressBar(t *testing.T) {
	m := registerModel()
	m.StartTime = time.Now()
	m.Phases[0].Done = true

	output := renderView(m)

	if !strings.Contains(output, "░") && !strings.Contains(output, "█") {
		t.Error("expected progress bar in output")
	}
}

func TestModelUpdateETA(t *testing.T) {
	m := registerModel()
	m.Phases[0].Done = true
	m.Phases[0].Duration = 90 * time.Second // 2x the 45s benchmark
	m.Phases[1].Active = true
	m.Phases[1].StartedAt = time.Now()

	m.updateETA()

	if m.PerformanceScale < 1.99 || m.PerformanceScale > 2.01 {
		t.Errorf("expected ~2.0 scale, got %f", m.PerformanceScale)
	}
	if m.EstimatedRemaining <= 0 {
		t.Error("expected a positive remaining estimate")
	}
}

func TestModelUpdateETA_Idle(t *testing.T) {
	m := registerModel()

	m.updateETA()

	if m.EstimatedRemaining != 0 {
		t.Errorf("expected no estimate without an active phase, got %v", m.EstimatedRemaining)
	}
}

func TestRenderView_ETA(t *testing.T) {
	m := registerModel()
	m.StartTime = time.Now()
	m.EstimatedRemaining = 90 * time.Second

	output := renderView(m)

	if !strings.Contains(output, "ETA 1m30s") {
		t.Error("expected ETA in output")
	}
}

func TestRenderView_Error(t *testing.T) {
	m := registerModel()
	m.StartTime = time.Now()
	m.Err = errors.New("token request failed")

	output := renderView(m)

	if !strings.Contains(output, "token request failed") {
		t.Error("expected error in output")
	}
}

func TestObserver_ForwardsEvents(t *testing.T) {
	var got []tea.Msg
	observer := NewObserver(func(msg tea.Msg) { got = append(got, msg) })

	observer.Event(provisioning.Event{Type: provisioning.EventPhaseStarted, Phase: "base images"})
	observer.Event(provisioning.Event{Type: provisioning.EventPhaseCompleted, Phase: "base images"})
	observer.Event(provisioning.Event{Type: provisioning.EventOrbRegistered, Orb: "abcdef12", Message: "registered as hopeful-mongoose"})
	observer.Infof("hello %s", "world")
	observer.Progress("batch ids", 2, 5)

	if len(got) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(got))
	}
	if msg, ok := got[0].(PhaseMsg); !ok || msg.Done {
		t.Errorf("expected start PhaseMsg, got %#v", got[0])
	}
	if msg, ok := got[1].(PhaseMsg); !ok || !msg.Done {
		t.Errorf("expected done PhaseMsg, got %#v", got[1])
	}
	if msg, ok := got[2].(OrbMsg); !ok || msg.ID != "abcdef12" {
		t.Errorf("expected OrbMsg, got %#v", got[2])
	}
	if msg, ok := got[3].(LogMsg); !ok || msg.Line != "hello world" {
		t.Errorf("expected LogMsg, got %#v", got[3])
	}
	if msg, ok := got[4].(ProgressMsg); !ok || msg.Total != 5 {
		t.Errorf("expected ProgressMsg, got %#v", got[4])
	}
}

func TestObserver_MapsFailureToPhaseError(t *testing.T) {
	var got []tea.Msg
	observer := NewObserver(func(msg tea.Msg) { got = append(got, msg) })

	observer.Event(provisioning.Event{Type: provisioning.EventPhaseFailed, Phase: "orb 1/2", Message: "failed: boom"})

	if len(got) != 1 {
		t.Fatalf("expected 1 message, got %d", len(got))
	}
	msg, ok := got[0].(PhaseMsg)
	if !ok || msg.Err == nil {
		t.Fatalf("expected PhaseMsg with error, got %#v", got[0])
	}
	if msg.Err.Error() != "failed: boom" {
		t.Errorf("expected failure detail, got %q", msg.Err)
	}
}
