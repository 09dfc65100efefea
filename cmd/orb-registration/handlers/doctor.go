package handlers

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/worldcoin/orb-registration/internal/tools"
)

// checkStationTools looks up the required external tools - can be
// replaced in tests.
var checkStationTools = func() tools.CheckResults {
	return tools.Check(tools.Required())
}

// Doctor reports the health of the registration station.
//
// It lists every external tool the flows shell out to with its resolved
// path or install hint, then checks whether the configuration file, if
// present, resolves into a supported profile. A missing config file is a
// hint, not a failure; a missing required tool or an invalid config is.
func Doctor(configPath string) error {
	fmt.Println()
	printHeader("orb-registration station check")

	fmt.Println("  Host tools")
	fmt.Println("  " + strings.Repeat("─", 35))

	results := checkStationTools()
	for _, r := range results.Results {
		extra := r.Path
		if !r.Found && r.Tool.InstallHint != "" {
			extra = "install: " + r.Tool.InstallHint
		}
		printRow(r.Tool.Name, r.Found, extra)
	}
	fmt.Println()

	cfgErr := doctorConfig(configPath)
	fmt.Println()

	if err := results.Error(); err != nil {
		return err
	}
	return cfgErr
}

// doctorConfig checks the configuration file and prints its resolution.
// The returned error is non-nil only for a present-but-invalid config.
func doctorConfig(configPath string) error {
	fmt.Println("  Configuration")
	fmt.Println("  " + strings.Repeat("─", 35))

	cfg, err := loadConfig(configPath)
	if err != nil {
		if configPath == "" && errors.Is(err, fs.ErrNotExist) {
			printRow("config file", false, "run 'orb-registration init'")
			return nil
		}
		printRow("config file", false, err.Error())
		return err
	}

	profile, err := newProfile(cfg)
	if err != nil {
		printRow("profile", false, err.Error())
		return err
	}

	printRow("config file", true, "")
	fmt.Printf("      platform: %s, backend: %s, release: %s\n", profile.Platform, profile.Backend, profile.Release)
	fmt.Printf("      channel:  %s\n", profile.Channel)
	fmt.Printf("      hardware: %s (%s)\n", profile.HardwareVersion, profile.Manufacturer)
	return nil
}

func printHeader(title string) {
	fmt.Printf("  %s\n", title)
	fmt.Println("  " + strings.Repeat("═", len(title)))
	fmt.Println()
}

func printRow(name string, ok bool, extra string) {
	indicator := "✅" // green check
	if !ok {
		indicator = "❌" // red X
	}

	if extra != "" {
		fmt.Printf("  %s  %-12s %s\n", indicator, name, extra)
	} else {
		fmt.Printf("  %s  %s\n", indicator, name)
	}
}
