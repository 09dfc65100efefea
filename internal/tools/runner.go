// Package tools wraps the external commands the registration flow shells
// out to. Every invocation goes through a Runner so tests can substitute
// a fake, and every failure is reported as a ToolError carrying the
// command line and its output.
package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands. The concrete implementation is
// ExecRunner; tests provide fakes that record the argv they receive.
type Runner interface {
	// Run executes the command and returns its combined stdout and stderr.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// Output executes the command and returns its stdout only. Stderr is
	// attached to the returned error on failure.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Interactive executes the command wired to the caller's terminal.
	// Used for commands that talk to the operator directly, such as the
	// Cloudflare Access login which prints a browser URL.
	Interactive(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - argv is assembled from typed wrappers, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - argv is assembled from typed wrappers, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return out, err
	}
	return out, nil
}

func (ExecRunner) Interactive(ctx context.Context, name string, args ...string) error {
	// #nosec G204 - argv is assembled from typed wrappers, not user input
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// ToolError reports a failed external command together with the output it
// produced, so the operator sees what mke2fs or mount actually printed.
type ToolError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\noutput: " + out
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

// run executes the command through r and folds any failure into a ToolError.
func run(ctx context.Context, r Runner, name string, args ...string) error {
	out, err := r.Run(ctx, name, args...)
	if err != nil {
		return &ToolError{Tool: name, Args: args, Output: string(out), Err: err}
	}
	return nil
}
