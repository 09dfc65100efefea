package config

import "fmt"

// Backend service endpoints. The inventory service is shared; the
// management API is environment-specific.
const (
	managementURLStage = "https://management.internal.stage.orb.worldcoin.dev"
	managementURLProd  = "https://management.internal.orb.worldcoin.dev"
	inventoryURL       = "https://api.operator.worldcoin.org/v1/graphql"
)

// Stage environments pin the channel per platform; prod diamond maps the
// default channel onto its GA tier.
const (
	channelStagePearl    = "internal-testing"
	channelStageDiamond  = "dev_diamond_channel"
	channelProdDiamondGA = "diamond-tier-ga"
)

// Profile is the fully resolved execution target for one run. Every
// supported {platform, backend} pair carries its management endpoint and
// effective channel; unmodeled combinations are rejected here, at
// construction, rather than surfacing as a bad request later.
type Profile struct {
	Platform        Platform
	Backend         Backend
	Release         Release
	HardwareVersion string
	Manufacturer    string
	Channel         string
	ManagementURL   string
	InventoryURL    string
}

// NewProfile resolves the configuration into a Profile.
func NewProfile(cfg *Config) (*Profile, error) {
	platform := Platform(cfg.Platform)
	backend := Backend(cfg.Backend)
	release := Release(cfg.Release)

	if !platform.IsValid() {
		return nil, fmt.Errorf("invalid platform: %q", cfg.Platform)
	}
	if !backend.IsValid() {
		return nil, fmt.Errorf("invalid backend: %q", cfg.Backend)
	}
	if !release.IsValid() {
		return nil, fmt.Errorf("invalid release: %q", cfg.Release)
	}

	p := &Profile{
		Platform:        platform,
		Backend:         backend,
		Release:         release,
		HardwareVersion: cfg.HardwareVersion,
		Manufacturer:    cfg.Manufacturer,
		InventoryURL:    inventoryURL,
	}

	switch {
	case backend == BackendStage && platform == PlatformPearl:
		p.ManagementURL = managementURLStage
		p.Channel = channelStagePearl
	case backend == BackendStage && platform == PlatformDiamond:
		p.ManagementURL = managementURLStage
		p.Channel = channelStageDiamond
	case backend == BackendProd && platform == PlatformPearl:
		p.ManagementURL = managementURLProd
		p.Channel = cfg.Channel
	case backend == BackendProd && platform == PlatformDiamond:
		p.ManagementURL = managementURLProd
		if cfg.Channel == DefaultChannel {
			p.Channel = channelProdDiamondGA
		} else {
			p.Channel = cfg.Channel
		}
	default:
		return nil, fmt.Errorf("unsupported platform/backend combination: %s/%s", platform, backend)
	}

	return p, nil
}

// IsDevelopment reports whether registered units are marked as
// development devices in the inventory service.
func (p *Profile) IsDevelopment() bool {
	return p.Release == ReleaseDev
}
