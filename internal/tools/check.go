package tools

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool describes one external command the workflow depends on.
type Tool struct {
	Name        string
	Description string
	InstallHint string
	Required    bool
}

// Required returns the commands that must be present on a registration
// station before any flow can run.
func Required() []Tool {
	return []Tool{
		{Name: "ssh-keygen", Description: "generates the ed25519 keypair an orb identity is derived from", Required: true},
		{Name: "mke2fs", Description: "formats the persistent images as ext4", InstallHint: "e2fsprogs", Required: true},
		{Name: "tune2fs", Description: "enables ACL support on the persistent images", InstallHint: "e2fsprogs", Required: true},
		{Name: "mount", Description: "attaches image files for file installation", Required: true},
		{Name: "umount", Description: "detaches image files after file installation", Required: true},
		{Name: "install", Description: "copies files into mounted images with explicit ownership", InstallHint: "coreutils", Required: true},
		{Name: "setfacl", Description: "applies default ACLs inside the persistent images", InstallHint: "acl", Required: true},
		{Name: "sync", Description: "flushes image writes before unmounting", InstallHint: "coreutils", Required: true},
		{Name: "cloudflared", Description: "obtains the access token for the management API", InstallHint: "https://developers.cloudflare.com/cloudflare-one/connections/connect-networks/downloads/", Required: true},
	}
}

// CheckResult reports whether a single tool was found on PATH.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults aggregates the lookup results for a set of tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// Check looks up each tool on PATH.
func Check(tools []Tool) CheckResults {
	var results CheckResults
	for _, tool := range tools {
		path, err := exec.LookPath(tool.Name)
		result := CheckResult{Tool: tool, Found: err == nil, Path: path}
		results.Results = append(results.Results, result)
		if err != nil {
			results.Missing = append(results.Missing, tool)
		}
	}
	return results
}

// HasErrors reports whether any required tool is missing.
func (r CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns a formatted error listing the missing required tools, or
// nil when everything needed is present.
func (r CheckResults) Error() error {
	if !r.HasErrors() {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("missing required tools:\n")
	for _, tool := range r.Missing {
		if !tool.Required {
			continue
		}
		sb.WriteString(fmt.Sprintf("  - %s: %s", tool.Name, tool.Description))
		if tool.InstallHint != "" {
			sb.WriteString(fmt.Sprintf(" (install: %s)", tool.InstallHint))
		}
		sb.WriteString("\n")
	}
	return fmt.Errorf("%s", strings.TrimRight(sb.String(), "\n"))
}
