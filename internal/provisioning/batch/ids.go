package batch

import (
	"fmt"

	"github.com/worldcoin/orb-registration/internal/identity"
	"github.com/worldcoin/orb-registration/internal/provisioning"
)

// IDsProvisioner registers a list of orb identifiers with both backends.
// Units carry their identity already; the management backend assigns the
// name that the inventory record then reuses.
type IDsProvisioner struct {
	ids []string
}

// NewIDsProvisioner creates a provisioner for the given raw identifiers.
func NewIDsProvisioner(ids []string) *IDsProvisioner {
	return &IDsProvisioner{ids: ids}
}

// Name implements the provisioning.Phase interface.
func (p *IDsProvisioner) Name() string {
	return "batch ids"
}

// Provision implements the provisioning.Phase interface. Identifiers are
// processed in input order and the first failure aborts the run, so the
// operator can fix the offending entry and resubmit the remainder.
func (p *IDsProvisioner) Provision(ctx *provisioning.Context) error {
	profile := ctx.Profile

	for i, raw := range p.ids {
		ctx.Observer.Progress(p.Name(), i+1, len(p.ids))
		ctx.Observer.Infof("processing orb id %s", raw)

		id, notes, err := identity.Normalize(raw)
		if err != nil {
			return err
		}
		for _, note := range notes {
			ctx.Observer.Warnf("%s", note)
		}

		name, existed, err := ctx.Management.CreateOrFetch(ctx, id, profile.HardwareVersion, profile.Manufacturer, string(profile.Platform))
		if err != nil {
			return fmt.Errorf("failed to register orb %s: %w", id, err)
		}
		if existed {
			ctx.Observer.Warnf("orb %s was already registered, reusing name %s", id, name)
			provisioning.LogOrbExists(ctx.Observer, p.Name(), id, name)
		}

		if err := ctx.Inventory.RegisterDevice(ctx, id, name, profile.HardwareVersion, profile.IsDevelopment()); err != nil {
			return fmt.Errorf("failed to record orb %s in inventory: %w", id, err)
		}

		ctx.State.Registered = append(ctx.State.Registered, id)
		provisioning.LogOrbRegistered(ctx.Observer, p.Name(), id, name)
	}

	return nil
}
