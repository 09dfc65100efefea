package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes all provisioning phases sequentially.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Infof("starting provisioning run with %d phases", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := phase.Name()

		ctx.Observer.Infof("[%s] (%d/%d) starting", name, i+1, len(phases))
		LogPhaseStart(ctx.Observer, name)

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			return fmt.Errorf("%s phase failed: %w", name, err)
		}

		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	ctx.Observer.Infof("provisioning run completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
