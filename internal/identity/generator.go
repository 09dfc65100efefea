package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ssh"

	"github.com/worldcoin/orb-registration/internal/tools"
)

// KeyMaterial locates the keypair an identity was derived from. The files
// stay in the working directory until the artifact store claims them.
type KeyMaterial struct {
	PrivateKeyPath string
	PublicKeyPath  string
}

// Generator derives fresh orb identifiers from newly generated ed25519
// keypairs.
type Generator struct {
	workDir string
	gw      *tools.Gateway
}

func NewGenerator(workDir string, gw *tools.Gateway) *Generator {
	return &Generator{workDir: workDir, gw: gw}
}

// Generate creates a new keypair in the working directory and derives the
// orb identifier from its public key. Stale key files from an aborted run
// are removed first so ssh-keygen never stops to ask about overwriting.
func (g *Generator) Generate(ctx context.Context) (OrbID, KeyMaterial, error) {
	private := filepath.Join(g.workDir, "uid")
	public := private + ".pub"

	for _, path := range []string{private, public} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return "", KeyMaterial{}, fmt.Errorf("failed to remove stale key file %s: %w", path, err)
		}
	}

	if err := g.gw.GenerateSSHKey(ctx, private); err != nil {
		return "", KeyMaterial{}, err
	}

	data, err := os.ReadFile(public)
	if err != nil {
		return "", KeyMaterial{}, fmt.Errorf("failed to read generated public key: %w", err)
	}

	id, err := Derive(data)
	if err != nil {
		return "", KeyMaterial{}, err
	}

	return id, KeyMaterial{PrivateKeyPath: private, PublicKeyPath: public}, nil
}

// Derive computes the identifier for an OpenSSH public key line. The key
// must parse as ed25519; the digest covers only the base64 body so the
// result is independent of the key's comment.
func Derive(publicKey []byte) (OrbID, error) {
	parsed, _, _, _, err := ssh.ParseAuthorizedKey(publicKey)
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}
	if parsed.Type() != ssh.KeyAlgoED25519 {
		return "", fmt.Errorf("unexpected key type %s, want %s", parsed.Type(), ssh.KeyAlgoED25519)
	}

	fields := strings.Fields(string(publicKey))
	if len(fields) < 2 {
		return "", fmt.Errorf("public key has %d fields, want at least 2", len(fields))
	}

	digest := sha256.Sum256([]byte(fields[1]))
	return OrbID(hex.EncodeToString(digest[:])[:Length]), nil
}
