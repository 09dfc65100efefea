package provisioning

import (
	"github.com/worldcoin/orb-registration/internal/tools"
)

// PreflightPhase implements the Phase interface for pre-run host checks.
// Registration stations are long-lived machines that drift; verifying the
// external commands up front turns a mid-run mount failure into an
// actionable report before any backend state is touched.
type PreflightPhase struct {
	tools []tools.Tool
}

// NewPreflightPhase creates a preflight phase covering the standard tool set.
func NewPreflightPhase() *PreflightPhase {
	return &PreflightPhase{tools: tools.Required()}
}

// Name implements the Phase interface.
func (p *PreflightPhase) Name() string {
	return "preflight"
}

// Provision implements the Phase interface.
func (p *PreflightPhase) Provision(ctx *Context) error {
	ctx.Observer.Infof("checking %d host tools", len(p.tools))

	results := tools.Check(p.tools)
	for _, missing := range results.Missing {
		if !missing.Required {
			ctx.Observer.Warnf("optional tool %s not found, %s", missing.Name, missing.Description)
		}
	}

	if err := results.Error(); err != nil {
		return err
	}

	ctx.Observer.Infof("host tools ok")
	return nil
}
