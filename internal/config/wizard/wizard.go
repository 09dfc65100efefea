package wizard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/worldcoin/orb-registration/internal/config"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	// Environment
	Backend string
	Release string

	// Hardware
	Platform        string
	HardwareVersion string
	Manufacturer    string

	// Channel requested for registered units
	Channel string

	// Artifact upload (optional)
	UploadEnabled bool
	UploadBucket  string
	UploadRegion  string
	UploadPrefix  string
}

// RunWizard runs the interactive configuration wizard.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runEnvironmentGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := runHardwareGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("hardware: %w", err)
	}

	if err := runChannelGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("channel: %w", err)
	}

	if err := runUploadGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}

	return result, nil
}

// runEnvironmentGroup prompts for the target backend and release mark.
func runEnvironmentGroup(ctx context.Context, result *Result) error {
	result.Backend = string(config.BackendStage)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Backend").
				Description("Environment the registrations target").
				Options(BackendOptions...).
				Value(&result.Backend),
		).Title("Environment"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	result.Release = DefaultRelease(result.Backend)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Release").
				Description("How registered units appear in the operator inventory").
				Options(ReleaseOptions...).
				Value(&result.Release),
		).Title("Release"),
	).RunWithContext(ctx)
}

// runHardwareGroup prompts for platform, hardware version, and
// manufacturer.
func runHardwareGroup(ctx context.Context, result *Result) error {
	result.Platform = string(config.PlatformPearl)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Platform").
				Description("Hardware variant being registered").
				Options(PlatformOptions...).
				Value(&result.Platform),
		).Title("Platform"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	result.Manufacturer = config.DefaultManufacturer

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hardware Version").
				Description("Unit hardware revision; the prefix must match the platform").
				Placeholder(HardwareVersionPlaceholder(result.Platform)).
				Value(&result.HardwareVersion).
				Validate(validateHardwareVersion(result.Platform)),
			huh.NewInput().
				Title("Manufacturer").
				Description("Recorded on the management record").
				Value(&result.Manufacturer).
				Validate(validateManufacturer),
		).Title("Hardware"),
	).RunWithContext(ctx)
}

// runChannelGroup prompts for the requested update channel.
func runChannelGroup(ctx context.Context, result *Result) error {
	result.Channel = config.DefaultChannel

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Channel").
				Description("Update channel requested for registered units").
				Value(&result.Channel).
				Validate(validateChannel),
		).Title("Channel"),
	).RunWithContext(ctx)
}

// runUploadGroup prompts for the optional artifact bundle upload.
func runUploadGroup(ctx context.Context, result *Result) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Upload Artifact Bundles?").
				Description("Replicate finished bundles to an S3-compatible store").
				Value(&result.UploadEnabled),
		).Title("Artifact Upload"),
	).RunWithContext(ctx)

	if err != nil {
		return err
	}

	if !result.UploadEnabled {
		return nil
	}

	result.UploadRegion = "eu-central-1"

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bucket").
				Description("Destination bucket for artifact bundles").
				Placeholder("orb-artifacts").
				Value(&result.UploadBucket).
				Validate(validateBucket),
			huh.NewInput().
				Title("Region").
				Value(&result.UploadRegion).
				Validate(validateRegion),
			huh.NewInput().
				Title("Key Prefix (Optional)").
				Description("Prepended to every uploaded object key").
				Placeholder("registrations/").
				Value(&result.UploadPrefix),
		).Title("Upload Destination"),
	).RunWithContext(ctx)
}

// ToConfig converts the wizard answers into a station configuration.
// Credentials are intentionally absent: LoadFile reads them from the
// environment so they never land in the config file.
func (r *Result) ToConfig() *config.Config {
	return &config.Config{
		Platform:        r.Platform,
		Backend:         r.Backend,
		Release:         r.Release,
		HardwareVersion: r.HardwareVersion,
		Manufacturer:    r.Manufacturer,
		Channel:         r.Channel,
		WorkDir:         config.DefaultWorkDir,
		ArtifactsDir:    config.DefaultArtifactsDir,
		Upload: config.UploadConfig{
			Enabled: r.UploadEnabled,
			Bucket:  r.UploadBucket,
			Region:  r.UploadRegion,
			Prefix:  r.UploadPrefix,
		},
	}
}

// validateHardwareVersion checks the hardware version against the
// chosen platform.
func validateHardwareVersion(platform string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errHardwareVersionRequired
		}
		detected, err := config.PlatformFromHardware(s)
		if err != nil {
			return err
		}
		if string(detected) != platform {
			return fmt.Errorf("hardware version %s belongs to the %s platform", s, detected)
		}
		return nil
	}
}

func validateManufacturer(s string) error {
	if s == "" {
		return errManufacturerRequired
	}
	return nil
}

func validateChannel(s string) error {
	if s == "" {
		return errChannelRequired
	}
	return nil
}

func validateBucket(s string) error {
	if s == "" {
		return errBucketRequired
	}
	return nil
}

func validateRegion(s string) error {
	if s == "" {
		return errRegionRequired
	}
	return nil
}
