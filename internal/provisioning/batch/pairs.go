package batch

import (
	"fmt"

	"github.com/worldcoin/orb-registration/internal/identity"
	"github.com/worldcoin/orb-registration/internal/provisioning"
)

// PairsProvisioner records id and name pairs in the operator inventory.
// Pairs come from units the management backend already knows, so only
// the inventory registration runs.
type PairsProvisioner struct {
	pairs []Pair
}

// NewPairsProvisioner creates a provisioner for the given pairs.
func NewPairsProvisioner(pairs []Pair) *PairsProvisioner {
	return &PairsProvisioner{pairs: pairs}
}

// Name implements the provisioning.Phase interface.
func (p *PairsProvisioner) Name() string {
	return "batch pairs"
}

// Provision implements the provisioning.Phase interface. Pairs are
// processed in input order and the first failure aborts the run.
func (p *PairsProvisioner) Provision(ctx *provisioning.Context) error {
	profile := ctx.Profile

	for i, pair := range p.pairs {
		ctx.Observer.Progress(p.Name(), i+1, len(p.pairs))
		ctx.Observer.Infof("processing orb pair %s -> %s", pair.ID, pair.Name)

		id, notes, err := identity.Normalize(pair.ID)
		if err != nil {
			return err
		}
		for _, note := range notes {
			ctx.Observer.Warnf("%s", note)
		}

		if err := ctx.Inventory.RegisterDevice(ctx, id, pair.Name, profile.HardwareVersion, profile.IsDevelopment()); err != nil {
			return fmt.Errorf("failed to record orb %s in inventory: %w", id, err)
		}

		ctx.State.Registered = append(ctx.State.Registered, id)
		provisioning.LogOrbRegistered(ctx.Observer, p.Name(), id, pair.Name)
	}

	return nil
}
