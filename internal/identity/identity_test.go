package identity

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	"github.com/worldcoin/orb-registration/internal/tools"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      OrbID
		wantNotes int
		wantErr   bool
	}{
		{name: "canonical", raw: "abcdef12", want: "abcdef12"},
		{name: "short is zero padded", raw: "ab12", want: "0000ab12", wantNotes: 1},
		{name: "uppercase is lowered", raw: "ABCDEF12", want: "abcdef12", wantNotes: 1},
		{name: "short uppercase gets both adjustments", raw: "AB12", want: "0000ab12", wantNotes: 2},
		{name: "surrounding whitespace trimmed", raw: "  abcdef12\n", want: "abcdef12"},
		{name: "too long", raw: "abcdef123", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, notes, err := Normalize(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidIdentity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, notes, tt.wantNotes)
		})
	}
}

func TestDerive(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)
	line := ssh.MarshalAuthorizedKey(sshPub)

	id, err := Derive(line)
	require.NoError(t, err)

	fields := strings.Fields(string(line))
	digest := sha256.Sum256([]byte(fields[1]))
	assert.Equal(t, OrbID(hex.EncodeToString(digest[:])[:Length]), id)
	assert.Len(t, string(id), Length)
	assert.Equal(t, strings.ToLower(string(id)), string(id))
}

func TestDeriveIgnoresComment(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)

	bare := ssh.MarshalAuthorizedKey(sshPub)
	commented := []byte(strings.TrimRight(string(bare), "\n") + " operator@station-07\n")

	bareID, err := Derive(bare)
	require.NoError(t, err)
	commentedID, err := Derive(commented)
	require.NoError(t, err)

	assert.Equal(t, bareID, commentedID)
}

func TestDeriveRejectsGarbage(t *testing.T) {
	_, err := Derive([]byte("not a key at all"))
	assert.Error(t, err)
}

func TestDeriveRejectsNonEd25519(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	sshPub, err := ssh.NewPublicKey(&key.PublicKey)
	require.NoError(t, err)

	_, err = Derive(ssh.MarshalAuthorizedKey(sshPub))
	assert.ErrorContains(t, err, "unexpected key type")
}

// keygenRunner simulates ssh-keygen by writing a fixed keypair to the
// requested path. It fails the test if stale key files are still present
// when ssh-keygen runs.
type keygenRunner struct {
	t          *testing.T
	publicKey  []byte
	keygenRuns int
}

func (r *keygenRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	if name != "ssh-keygen" {
		r.t.Fatalf("unexpected command %s", name)
	}
	r.keygenRuns++

	keyPath := args[len(args)-1]
	for _, path := range []string{keyPath, keyPath + ".pub"} {
		if _, err := os.Stat(path); err == nil {
			r.t.Errorf("stale file %s still present when ssh-keygen ran", path)
		}
	}

	if err := os.WriteFile(keyPath, []byte("PRIVATE KEY\n"), 0o600); err != nil {
		return nil, err
	}
	if err := os.WriteFile(keyPath+".pub", r.publicKey, 0o644); err != nil {
		return nil, err
	}
	return nil, nil
}

func (r *keygenRunner) Output(_ context.Context, name string, _ ...string) ([]byte, error) {
	r.t.Fatalf("unexpected Output call for %s", name)
	return nil, nil
}

func (r *keygenRunner) Interactive(_ context.Context, name string, _ ...string) error {
	r.t.Fatalf("unexpected Interactive call for %s", name)
	return nil
}

func TestGeneratorGenerate(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)
	line := ssh.MarshalAuthorizedKey(sshPub)

	workDir := t.TempDir()

	// Leftovers from a previous aborted run must not survive.
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "uid"), []byte("stale"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(workDir, "uid.pub"), []byte("stale"), 0o644))

	runner := &keygenRunner{t: t, publicKey: line}
	gen := NewGenerator(workDir, tools.NewGateway(runner))

	id, km, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, runner.keygenRuns)

	wantID, err := Derive(line)
	require.NoError(t, err)
	assert.Equal(t, wantID, id)

	assert.Equal(t, filepath.Join(workDir, "uid"), km.PrivateKeyPath)
	assert.Equal(t, filepath.Join(workDir, "uid.pub"), km.PublicKeyPath)

	data, err := os.ReadFile(km.PublicKeyPath)
	require.NoError(t, err)
	assert.Equal(t, line, data)
}
