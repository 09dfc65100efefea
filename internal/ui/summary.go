package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/worldcoin/orb-registration/internal/provisioning"
)

// Summary prints the end-of-run block: how many orbs completed, their
// identifiers, and where the artifact bundles went.
func (c *ConsoleObserver) Summary(state *provisioning.State, artifactsDir string, elapsed time.Duration) {
	c.println("")
	c.println("  " + c.render(dimStyle, strings.Repeat("─", 40)))

	if state == nil || len(state.Registered) == 0 {
		c.println("  " + c.render(failStyle, crossMark+" no orbs registered"))
		return
	}

	c.println(fmt.Sprintf("  %s registered %d orb(s) in %s",
		c.render(okStyle, checkMark), len(state.Registered), formatElapsed(elapsed)))
	for _, id := range state.Registered {
		c.println("       " + string(id))
	}
	if artifactsDir != "" {
		c.println("  " + c.render(dimStyle, "artifacts: "+artifactsDir))
	}
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
