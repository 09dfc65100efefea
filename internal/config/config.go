// Package config defines the station configuration, the environment
// profiles derived from it, and the YAML loader.
package config

import (
	"errors"
	"fmt"
)

// Config holds the registration station configuration.
type Config struct {
	// Platform selects the workflow variant: pearl (interactive, with
	// image construction) or diamond (batch).
	Platform string `mapstructure:"platform" yaml:"platform"`

	// Backend selects the target environment (stage or prod).
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Release marks registered units as dev or prod devices.
	Release string `mapstructure:"release" yaml:"release"`

	// HardwareVersion is the unit hardware revision, e.g. PEARL_EVT1 or
	// DIAMOND_EVT2. Its prefix must agree with Platform.
	HardwareVersion string `mapstructure:"hardware_version" yaml:"hardware_version"`

	// Manufacturer is recorded on the management record.
	// Default: TFH_Jabil
	Manufacturer string `mapstructure:"manufacturer" yaml:"manufacturer"`

	// Channel is the requested update channel. Stage environments and
	// the prod diamond default are overridden during profile resolution.
	// Default: general
	Channel string `mapstructure:"channel" yaml:"channel"`

	// WorkDir holds the generated keypair and the shared base images.
	// Default: build
	WorkDir string `mapstructure:"work_dir" yaml:"work_dir"`

	// ArtifactsDir receives one bundle directory per registered unit.
	// Default: artifacts
	ArtifactsDir string `mapstructure:"artifacts_dir" yaml:"artifacts_dir"`

	// ManagementToken authenticates against the management API. Falls
	// back to FM_CLI_ORB_MANAGER_INTERNAL_TOKEN when unset.
	ManagementToken string `mapstructure:"management_token" yaml:"management_token,omitempty"`

	// InventoryToken authenticates against the inventory GraphQL API.
	// Falls back to HARDWARE_TOKEN_PRODUCTION when unset.
	InventoryToken string `mapstructure:"inventory_token" yaml:"inventory_token,omitempty"`

	// PrerequisitesCheckEnabled runs the external tool preflight before
	// any registration flow.
	// Default: true
	PrerequisitesCheckEnabled *bool `mapstructure:"prerequisites_check_enabled" yaml:"prerequisites_check_enabled,omitempty"`

	// Upload configures the optional artifact bundle upload.
	Upload UploadConfig `mapstructure:"upload" yaml:"upload,omitempty"`
}

// UploadConfig configures pushing finished artifact bundles to an
// S3-compatible object store.
type UploadConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint overrides the S3 endpoint for non-AWS stores. Empty means
	// the SDK default.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	Region string `mapstructure:"region" yaml:"region"`
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Prefix is prepended to every uploaded object key.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// IsPrerequisitesCheckEnabled returns the effective preflight toggle.
func (c *Config) IsPrerequisitesCheckEnabled() bool {
	if c.PrerequisitesCheckEnabled == nil {
		return true
	}
	return *c.PrerequisitesCheckEnabled
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []error

	if !Platform(c.Platform).IsValid() {
		errs = append(errs, fmt.Errorf("platform must be one of: %v", ValidPlatforms()))
	}
	if !Backend(c.Backend).IsValid() {
		errs = append(errs, fmt.Errorf("backend must be one of: %v", ValidBackends()))
	}
	if !Release(c.Release).IsValid() {
		errs = append(errs, fmt.Errorf("release must be one of: %v", ValidReleases()))
	}

	if c.HardwareVersion == "" {
		errs = append(errs, errors.New("hardware_version is required"))
	} else if detected, err := PlatformFromHardware(c.HardwareVersion); err != nil {
		errs = append(errs, err)
	} else if Platform(c.Platform).IsValid() && detected != Platform(c.Platform) {
		errs = append(errs, fmt.Errorf("hardware_version %s belongs to platform %s, not %s",
			c.HardwareVersion, detected, c.Platform))
	}

	if c.Manufacturer == "" {
		errs = append(errs, errors.New("manufacturer is required"))
	}
	if c.Channel == "" {
		errs = append(errs, errors.New("channel is required"))
	}

	if c.ManagementToken == "" {
		errs = append(errs, fmt.Errorf("management token is required (set management_token or %s)", EnvManagementToken))
	}
	if c.InventoryToken == "" {
		errs = append(errs, fmt.Errorf("inventory token is required (set inventory_token or %s)", EnvInventoryToken))
	}

	if c.Upload.Enabled {
		if c.Upload.Bucket == "" {
			errs = append(errs, errors.New("upload.bucket is required when upload is enabled"))
		}
		if c.Upload.Region == "" {
			errs = append(errs, errors.New("upload.region is required when upload is enabled"))
		}
	}

	return errors.Join(errs...)
}
