package tools

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// recordingRunner captures every argv and optionally fails a named tool.
type recordingRunner struct {
	calls  [][]string
	failOn string
}

func (r *recordingRunner) record(name string, args []string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	if name == r.failOn {
		return errors.New("exit status 1")
	}
	return nil
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	if err := r.record(name, args); err != nil {
		return []byte("simulated failure output"), err
	}
	return nil, nil
}

func (r *recordingRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	if err := r.record(name, args); err != nil {
		return nil, err
	}
	return nil, nil
}

func (r *recordingRunner) Interactive(_ context.Context, name string, args ...string) error {
	return r.record(name, args)
}

func TestGatewayFormatExt4(t *testing.T) {
	runner := &recordingRunner{}
	g := NewGateway(runner)

	if err := g.FormatExt4(context.Background(), "persistent-journaled.img", "0:1000", true); err != nil {
		t.Fatalf("FormatExt4 journaled: %v", err)
	}
	if err := g.FormatExt4(context.Background(), "persistent.img", "0:1000", false); err != nil {
		t.Fatalf("FormatExt4 no journal: %v", err)
	}

	want := [][]string{
		{"mke2fs", "-q", "-t", "ext4", "-E", "root_owner=0:1000", "persistent-journaled.img"},
		{"mke2fs", "-q", "-t", "ext4", "-O", "^has_journal", "-E", "root_owner=0:1000", "persistent.img"},
	}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("argv mismatch:\ngot  %v\nwant %v", runner.calls, want)
	}
}

func TestGatewayMount(t *testing.T) {
	runner := &recordingRunner{}
	g := NewGateway(runner)

	if err := g.Mount(context.Background(), "base.img", "/mnt/loop", true); err != nil {
		t.Fatalf("Mount with loop: %v", err)
	}
	if err := g.Mount(context.Background(), "copy.img", "/mnt/loop", false); err != nil {
		t.Fatalf("Mount without loop: %v", err)
	}
	if err := g.Unmount(context.Background(), "/mnt/loop"); err != nil {
		t.Fatalf("Unmount: %v", err)
	}

	want := [][]string{
		{"mount", "-o", "loop", "base.img", "/mnt/loop"},
		{"mount", "copy.img", "/mnt/loop"},
		{"umount", "/mnt/loop"},
	}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("argv mismatch:\ngot  %v\nwant %v", runner.calls, want)
	}
}

func TestGatewayInstall(t *testing.T) {
	runner := &recordingRunner{}
	g := NewGateway(runner)

	if err := g.Install(context.Background(), "components.json", "/mnt/loop/components.json", 0, 1000, 0o664); err != nil {
		t.Fatalf("Install: %v", err)
	}

	want := [][]string{
		{"install", "-o", "0", "-g", "1000", "-m", "664", "components.json", "/mnt/loop/components.json"},
	}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("argv mismatch:\ngot  %v\nwant %v", runner.calls, want)
	}
}

func TestGatewayGenerateSSHKey(t *testing.T) {
	runner := &recordingRunner{}
	g := NewGateway(runner)

	if err := g.GenerateSSHKey(context.Background(), "/tmp/build/uid"); err != nil {
		t.Fatalf("GenerateSSHKey: %v", err)
	}

	want := [][]string{
		{"ssh-keygen", "-N", "", "-o", "-a", "100", "-t", "ed25519", "-q", "-f", "/tmp/build/uid"},
	}
	if !reflect.DeepEqual(runner.calls, want) {
		t.Errorf("argv mismatch:\ngot  %v\nwant %v", runner.calls, want)
	}
}

func TestToolError(t *testing.T) {
	runner := &recordingRunner{failOn: "mke2fs"}
	g := NewGateway(runner)

	err := g.FormatExt4(context.Background(), "persistent.img", "0:1000", false)
	if err == nil {
		t.Fatal("expected error from failing mke2fs")
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %T", err)
	}
	if toolErr.Tool != "mke2fs" {
		t.Errorf("Tool = %q, want mke2fs", toolErr.Tool)
	}
	msg := toolErr.Error()
	for _, fragment := range []string{"mke2fs", "persistent.img", "simulated failure output"} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("error message %q missing %q", msg, fragment)
		}
	}
}
