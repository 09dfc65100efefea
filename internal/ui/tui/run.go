package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/worldcoin/orb-registration/internal/provisioning"
)

// RunFunc executes a registration run, reporting through the observer.
type RunFunc func(observer provisioning.Observer) (*provisioning.State, error)

// RunRegisterTUI wraps a registration run with a live dashboard. The
// run executes in a background goroutine and streams its output into
// the program; the final state travels back through DoneMsg or ErrMsg
// so partial results survive a failed run. Quitting early abandons the
// run.
func RunRegisterTUI(backend, platform string, phases []string, run RunFunc) (*provisioning.State, error) {
	m := NewRegisterModel(backend, platform, phases)

	p := tea.NewProgram(m, tea.WithAltScreen())

	go func() {
		state, err := run(NewObserver(p.Send))
		if err != nil {
			p.Send(ErrMsg{Err: err, State: state})
			return
		}
		p.Send(DoneMsg{State: state})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(Model)
	if fm.Err != nil {
		return fm.State, fm.Err
	}
	if !fm.Done {
		return fm.State, errors.New("registration interrupted")
	}
	return fm.State, nil
}

// Observer forwards provisioning output into a running program.
type Observer struct {
	send func(tea.Msg)
}

// NewObserver creates an observer that forwards through send.
func NewObserver(send func(tea.Msg)) *Observer {
	return &Observer{send: send}
}

// Infof implements provisioning.Observer.
func (o *Observer) Infof(format string, v ...any) {
	o.send(LogMsg{Level: "info", Line: fmt.Sprintf(format, v...)})
}

// Warnf implements provisioning.Observer.
func (o *Observer) Warnf(format string, v ...any) {
	o.send(LogMsg{Level: "warn", Line: fmt.Sprintf(format, v...)})
}

// Errorf implements provisioning.Observer.
func (o *Observer) Errorf(format string, v ...any) {
	o.send(LogMsg{Level: "error", Line: fmt.Sprintf(format, v...)})
}

// Event maps structured events onto dashboard messages.
func (o *Observer) Event(event provisioning.Event) {
	switch event.Type {
	case provisioning.EventPhaseStarted:
		o.send(PhaseMsg{Phase: event.Phase})
	case provisioning.EventPhaseCompleted:
		o.send(PhaseMsg{Phase: event.Phase, Done: true})
	case provisioning.EventPhaseFailed:
		o.send(PhaseMsg{Phase: event.Phase, Err: errors.New(event.Message)})
	case provisioning.EventOrbRegistered:
		o.send(OrbMsg{ID: string(event.Orb), Detail: event.Message})
	case provisioning.EventOrbExists:
		o.send(OrbMsg{ID: string(event.Orb), Detail: event.Message, Existed: true})
	}
}

// Progress implements provisioning.Observer.
func (o *Observer) Progress(phase string, current, total int) {
	o.send(ProgressMsg{Phase: phase, Current: current, Total: total})
}
