// Package ui renders registration output for humans. ConsoleObserver
// writes styled log lines suitable for plain terminals and CI logs; the
// tui subpackage drives a live dashboard for interactive runs.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/worldcoin/orb-registration/internal/provisioning"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorDim    = lipgloss.Color("#6b7280")

	okStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	failStyle = lipgloss.NewStyle().Foreground(colorRed)
	warnStyle = lipgloss.NewStyle().Foreground(colorYellow)
	dimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
)

// IsInteractive reports whether stdout is attached to a terminal.
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// ConsoleObserver renders provisioning output as one line per message.
// It is safe for concurrent use.
type ConsoleObserver struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewConsoleObserver creates a console observer writing to out. Styling
// is applied only when color is true.
func NewConsoleObserver(out io.Writer, color bool) *ConsoleObserver {
	return &ConsoleObserver{out: out, color: color}
}

// Infof implements provisioning.Observer.
func (c *ConsoleObserver) Infof(format string, v ...any) {
	c.println("  " + fmt.Sprintf(format, v...))
}

// Warnf implements provisioning.Observer.
func (c *ConsoleObserver) Warnf(format string, v ...any) {
	c.println("  " + c.render(warnStyle, warnMark+" "+fmt.Sprintf(format, v...)))
}

// Errorf implements provisioning.Observer.
func (c *ConsoleObserver) Errorf(format string, v ...any) {
	c.println("  " + c.render(failStyle, crossMark+" "+fmt.Sprintf(format, v...)))
}

// Event renders phase results and completed registrations. Phase starts
// and duplicate registrations already arrive as log lines.
func (c *ConsoleObserver) Event(event provisioning.Event) {
	switch event.Type {
	case provisioning.EventPhaseCompleted:
		c.println("  " + c.render(okStyle, checkMark) + " " + event.Phase + " " + c.render(dimStyle, event.Message))
	case provisioning.EventPhaseFailed:
		c.println("  " + c.render(failStyle, crossMark+" "+event.Phase+" "+event.Message))
	case provisioning.EventOrbRegistered:
		c.println("  " + c.render(okStyle, checkMark) + " orb " + string(event.Orb) + " " + event.Message)
	}
}

// Progress is a no-op on the console. The per-item log lines carry
// batch progress.
func (c *ConsoleObserver) Progress(string, int, int) {}

func (c *ConsoleObserver) println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

func (c *ConsoleObserver) render(style lipgloss.Style, s string) string {
	if !c.color {
		return s
	}
	return style.Render(s)
}
