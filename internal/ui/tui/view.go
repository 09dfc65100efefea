package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)
	renderRegistered(&b, m)
	renderLog(&b, m)
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("orb registration: %s/%s", m.Backend, m.Platform)
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done:
		status += readyStyle.Render("Complete")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render("Provisioning")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	pct := int(progress * 100)
	eta := ""
	if m.EstimatedRemaining > 0 {
		eta = fmt.Sprintf(" ETA %s", formatDuration(m.EstimatedRemaining))
	}
	if m.PerformanceScale != 0 && m.PerformanceScale != 1.0 {
		eta += fmt.Sprintf("  speed x%.2f", m.PerformanceScale)
	}
	fmt.Fprintf(b, "  %s %d%%%s\n", bar, pct, eta)
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		var icon string
		var style styleFunc
		switch {
		case phase.Err != nil:
			icon = crossMark
			style = sf(failedStyle)
		case phase.Done:
			icon = checkMark
			style = sf(readyStyle)
		case phase.Active:
			icon = currentSpinner(m.SpinnerFrame)
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}

		extra := ""
		if phase.Active && phase.Name == m.ProgressPhase && m.ProgressTotal > 0 {
			extra = " " + dimStyle.Render(fmt.Sprintf("%d/%d", m.ProgressCurrent, m.ProgressTotal))
		}
		fmt.Fprintf(b, "    %s %s%s\n", style(icon), style(phase.Name), extra)
	}
}

func renderRegistered(b *strings.Builder, m Model) {
	if len(m.Registered) == 0 {
		return
	}

	b.WriteString(sectionStyle.Render("  Registered"))
	b.WriteString("\n")

	for _, orb := range m.Registered {
		icon := checkMark
		style := sf(readyStyle)
		if orb.Existed {
			icon = warnMark
			style = sf(warningStyle)
		}
		fmt.Fprintf(b, "    %s %-10s %s\n", style(icon), orb.ID, dimStyle.Render(orb.Detail))
	}
}

func renderLog(b *strings.Builder, m Model) {
	if len(m.Log) == 0 {
		return
	}

	b.WriteString(sectionStyle.Render("  Log"))
	b.WriteString("\n")

	for _, line := range m.Log {
		style := dimStyle
		switch line.Level {
		case "warn":
			style = warningStyle
		case "error":
			style = failedStyle
		}
		fmt.Fprintf(b, "    %s\n", style.Render(line.Line))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	pulse := ""
	if !m.Done && m.Err == nil {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " provisioning"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s%s  |  q: quit", elapsed, pulse)))
	b.WriteString("\n")
}

// Helper functions

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}
	if len(m.Phases) == 0 {
		return 0
	}

	var progress float64
	for _, phase := range m.Phases {
		switch {
		case phase.Done:
			progress++
		case phase.Active && phase.Name == m.ProgressPhase && m.ProgressTotal > 0:
			progress += float64(m.ProgressCurrent-1) / float64(m.ProgressTotal)
		}
	}
	return progress / float64(len(m.Phases))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
