package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/worldcoin/orb-registration/internal/provisioning"
	"github.com/worldcoin/orb-registration/internal/ui/benchmarks"
)

// logTail is how many recent log lines the dashboard keeps visible.
const logTail = 6

// Phase represents one provisioning phase for display.
type Phase struct {
	Name      string
	Done      bool
	Active    bool
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Orb is one registered unit for display.
type Orb struct {
	ID      string
	Detail  string
	Existed bool
}

// Model is the Bubble Tea model for the registration dashboard.
type Model struct {
	// Run info
	Backend  string
	Platform string

	// Phase progress
	Phases []Phase

	// Units that finished their registration steps
	Registered []Orb

	// Item progress within the active phase
	ProgressPhase   string
	ProgressCurrent int
	ProgressTotal   int

	// Recent log lines
	Log []LogMsg

	// ETA
	EstimatedRemaining time.Duration
	PerformanceScale   float64

	// Animation
	SpinnerFrame int
	StartTime    time.Time

	// UI state
	Width  int
	Height int
	Err    error
	Done   bool
	State  *provisioning.State
}

// NewRegisterModel creates a model for a registration run whose phases
// are known up front.
func NewRegisterModel(backend, platform string, phases []string) Model {
	m := Model{
		Backend:          backend,
		Platform:         platform,
		StartTime:        time.Now(),
		PerformanceScale: 1.0,
		Phases:           make([]Phase, 0, len(phases)),
	}
	for _, name := range phases {
		m.Phases = append(m.Phases, Phase{Name: name})
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PhaseMsg:
		m.updatePhase(msg)

	case OrbMsg:
		m.Registered = append(m.Registered, Orb{ID: msg.ID, Detail: msg.Detail, Existed: msg.Existed})

	case ProgressMsg:
		m.ProgressPhase = msg.Phase
		m.ProgressCurrent = msg.Current
		m.ProgressTotal = msg.Total

	case LogMsg:
		m.Log = append(m.Log, msg)
		if len(m.Log) > logTail {
			m.Log = m.Log[len(m.Log)-logTail:]
		}

	case TickMsg:
		m.SpinnerFrame++
		m.updateETA()
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		m.State = msg.State
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		m.State = msg.State
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Name == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.Phases = append(m.Phases, Phase{Name: msg.Phase})
		idx = len(m.Phases) - 1
	}

	// Mark previous phases as done
	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	switch {
	case msg.Err != nil:
		m.Phases[idx].Err = msg.Err
		m.Phases[idx].Active = false
	case msg.Done:
		m.Phases[idx].Done = true
		m.Phases[idx].Active = false
		if !m.Phases[idx].StartedAt.IsZero() {
			m.Phases[idx].Duration = time.Since(m.Phases[idx].StartedAt)
		}
	default:
		m.Phases[idx].Active = true
		if m.Phases[idx].StartedAt.IsZero() {
			m.Phases[idx].StartedAt = time.Now()
		}
	}
}

func (m *Model) updateETA() {
	var completed []benchmarks.PhaseDuration
	var pending []string
	current := ""
	var currentElapsed time.Duration

	for _, phase := range m.Phases {
		switch {
		case phase.Done:
			completed = append(completed, benchmarks.PhaseDuration{Phase: phase.Name, Duration: phase.Duration})
		case phase.Active:
			current = phase.Name
			if !phase.StartedAt.IsZero() {
				currentElapsed = time.Since(phase.StartedAt)
			}
		default:
			pending = append(pending, phase.Name)
		}
	}

	if current == "" {
		m.EstimatedRemaining = 0
		return
	}

	m.PerformanceScale = benchmarks.PerformanceScale(completed, current, currentElapsed)
	m.EstimatedRemaining = benchmarks.EstimateRemaining(current, currentElapsed, pending, m.PerformanceScale)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
