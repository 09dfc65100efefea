// Package artifacts manages the durable per-unit bundle directories:
// key material, display name, token, and the two persistent images.
package artifacts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/worldcoin/orb-registration/internal/identity"
	"github.com/worldcoin/orb-registration/internal/image"
)

// File names inside a bundle directory. orb-name and token are also the
// names installed into the persistent images.
const (
	PrivateKeyFile = "uid"
	PublicKeyFile  = "uid.pub"
	NameFile       = "orb-name"
	TokenFile      = "token"
)

// Store lays out one bundle directory per registered orb under its root.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the directory all bundles live under.
func (s *Store) Root() string { return s.root }

// Dir returns the bundle directory for one orb.
func (s *Store) Dir(id identity.OrbID) string {
	return filepath.Join(s.root, id.String())
}

// Bundle holds the paths of one unit's assembled artifacts.
type Bundle struct {
	ID                  identity.OrbID
	Dir                 string
	PrivateKey          string
	PublicKey           string
	Name                string
	Token               string
	Persistent          string
	PersistentJournaled string
}

// Files returns every file in the bundle, in a stable order.
func (b *Bundle) Files() []string {
	return []string{
		b.PrivateKey,
		b.PublicKey,
		b.Name,
		b.Token,
		b.Persistent,
		b.PersistentJournaled,
	}
}

// Assemble creates the orb's bundle directory and fills it: key material
// is moved in from the working directory (freeing the key paths for the
// next unit), name and token are written, and both base images are
// copied for later personalization. The shared base images are never
// mutated.
func (s *Store) Assemble(id identity.OrbID, km identity.KeyMaterial, name, token string, base *image.BaseImages) (*Bundle, error) {
	dir := s.Dir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bundle directory %s: %w", dir, err)
	}

	b := &Bundle{
		ID:                  id,
		Dir:                 dir,
		PrivateKey:          filepath.Join(dir, PrivateKeyFile),
		PublicKey:           filepath.Join(dir, PublicKeyFile),
		Name:                filepath.Join(dir, NameFile),
		Token:               filepath.Join(dir, TokenFile),
		Persistent:          filepath.Join(dir, image.PersistentName),
		PersistentJournaled: filepath.Join(dir, image.PersistentJournaledName),
	}

	if err := moveFile(km.PrivateKeyPath, b.PrivateKey); err != nil {
		return nil, fmt.Errorf("failed to move private key: %w", err)
	}
	if err := moveFile(km.PublicKeyPath, b.PublicKey); err != nil {
		return nil, fmt.Errorf("failed to move public key: %w", err)
	}

	if err := os.WriteFile(b.Name, []byte(name), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write name file: %w", err)
	}
	if err := os.WriteFile(b.Token, []byte(token), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write token file: %w", err)
	}

	if err := copyFile(base.Persistent, b.Persistent); err != nil {
		return nil, err
	}
	if err := copyFile(base.PersistentJournaled, b.PersistentJournaled); err != nil {
		return nil, err
	}

	return b, nil
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// two live on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}
	return nil
}
