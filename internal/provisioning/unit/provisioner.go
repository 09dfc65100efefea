// Package unit provisions a single factory unit end to end: identity
// generation, backend registration, and artifact assembly.
package unit

import (
	"fmt"
	"path/filepath"

	"github.com/worldcoin/orb-registration/internal/provisioning"
)

// Provisioner handles one unit of an interactive provisioning run.
type Provisioner struct {
	index int
	total int
}

// NewProvisioner creates a provisioner for unit index out of total.
func NewProvisioner(index, total int) *Provisioner {
	return &Provisioner{index: index, total: total}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return fmt.Sprintf("orb %d/%d", p.index, p.total)
}

// Provision implements the provisioning.Phase interface.
//
// The unit is registered with the management backend before its artifacts
// exist so that a later failure leaves a resumable trace server-side.
// Inventory registration comes last: an orb present in the operator
// inventory is expected to have a complete bundle on disk.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	if ctx.State.BaseImages == nil {
		return fmt.Errorf("base images not built")
	}

	id, keys, err := ctx.Identities.Generate(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate identity: %w", err)
	}
	ctx.Observer.Infof("generated orb id %s", id)

	profile := ctx.Profile
	name, existed, err := ctx.Management.CreateOrFetch(ctx, id, profile.HardwareVersion, profile.Manufacturer, string(profile.Platform))
	if err != nil {
		return fmt.Errorf("failed to register orb %s: %w", id, err)
	}
	if existed {
		ctx.Observer.Warnf("orb %s was already registered, reusing name %s", id, name)
		provisioning.LogOrbExists(ctx.Observer, p.Name(), id, name)
	} else {
		ctx.Observer.Infof("orb %s registered as %s", id, name)
	}

	if err := ctx.Management.SetChannel(ctx, id, profile.Channel); err != nil {
		return fmt.Errorf("failed to set channel for orb %s: %w", id, err)
	}
	ctx.Observer.Infof("orb %s assigned to channel %s", id, profile.Channel)

	token, err := ctx.Management.IssueToken(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to issue token for orb %s: %w", id, err)
	}

	bundle, err := ctx.Store.Assemble(id, keys, name, token, ctx.State.BaseImages)
	if err != nil {
		return fmt.Errorf("failed to assemble artifacts for orb %s: %w", id, err)
	}
	ctx.Observer.Infof("orb %s artifacts assembled in %s", id, bundle.Dir)

	for _, img := range []string{bundle.Persistent, bundle.PersistentJournaled} {
		ctx.Observer.Infof("personalizing %s for orb %s", filepath.Base(img), id)
		if err := ctx.Images.Personalize(ctx, img, ctx.MountDir, bundle.Name, bundle.Token); err != nil {
			return fmt.Errorf("failed to personalize %s for orb %s: %w", filepath.Base(img), id, err)
		}
	}

	if err := ctx.Inventory.RegisterDevice(ctx, id, name, profile.HardwareVersion, profile.IsDevelopment()); err != nil {
		return fmt.Errorf("failed to record orb %s in inventory: %w", id, err)
	}

	if ctx.Uploader != nil {
		if err := ctx.Uploader.UploadBundle(ctx, bundle); err != nil {
			return fmt.Errorf("failed to upload bundle for orb %s: %w", id, err)
		}
		ctx.Observer.Infof("orb %s bundle replicated offsite", id)
	}

	ctx.State.Registered = append(ctx.State.Registered, id)
	provisioning.LogOrbRegistered(ctx.Observer, p.Name(), id, name)
	return nil
}
