package testing

import (
	"context"
	"testing"
	"time"

	"github.com/worldcoin/orb-registration/internal/config"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// StageProfile returns a resolved stage profile for the given platform.
func StageProfile(t *testing.T, platform config.Platform) *config.Profile {
	t.Helper()

	hardware := "PEARL_EVT2"
	if platform == config.PlatformDiamond {
		hardware = "DIAMOND_EVT"
	}
	profile, err := config.NewProfile(&config.Config{
		Platform:        string(platform),
		Backend:         string(config.BackendStage),
		Release:         string(config.ReleaseDev),
		HardwareVersion: hardware,
		Manufacturer:    config.DefaultManufacturer,
		Channel:         config.DefaultChannel,
	})
	if err != nil {
		t.Fatalf("failed to resolve stage profile: %v", err)
	}
	return profile
}
