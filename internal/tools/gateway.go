package tools

import (
	"context"
	"fmt"
	"io/fs"
)

// Gateway exposes the narrow set of host commands the workflow needs.
// Argument lists mirror the manufacturing line's known-good invocations,
// so behaviour stays byte for byte comparable across stations.
type Gateway struct {
	r Runner
}

func NewGateway(r Runner) *Gateway {
	return &Gateway{r: r}
}

// GenerateSSHKey creates a fresh ed25519 keypair at keyPath (private) and
// keyPath.pub, with no passphrase, in the OpenSSH key format.
func (g *Gateway) GenerateSSHKey(ctx context.Context, keyPath string) error {
	return run(ctx, g.r, "ssh-keygen", "-N", "", "-o", "-a", "100", "-t", "ed25519", "-q", "-f", keyPath)
}

// FormatExt4 formats the image file as ext4 with the given root ownership,
// optionally without a journal.
func (g *Gateway) FormatExt4(ctx context.Context, image, rootOwner string, withJournal bool) error {
	args := []string{"-q", "-t", "ext4"}
	if !withJournal {
		args = append(args, "-O", "^has_journal")
	}
	args = append(args, "-E", "root_owner="+rootOwner, image)
	return run(ctx, g.r, "mke2fs", args...)
}

// EnableACL turns on the acl default mount option for the image.
func (g *Gateway) EnableACL(ctx context.Context, image string) error {
	return run(ctx, g.r, "tune2fs", "-o", "acl", image)
}

// Mount attaches the image file at dir. The base images are mounted with
// an explicit loop option; personalization relies on mount's automatic
// loop setup for regular files.
func (g *Gateway) Mount(ctx context.Context, image, dir string, loop bool) error {
	if loop {
		return run(ctx, g.r, "mount", "-o", "loop", image, dir)
	}
	return run(ctx, g.r, "mount", image, dir)
}

// Unmount detaches whatever is mounted at dir.
func (g *Gateway) Unmount(ctx context.Context, dir string) error {
	return run(ctx, g.r, "umount", dir)
}

// Install copies src to dst with explicit ownership and mode, as root
// would lay the file down on the unit itself.
func (g *Gateway) Install(ctx context.Context, src, dst string, owner, group int, mode fs.FileMode) error {
	return run(ctx, g.r, "install",
		"-o", fmt.Sprintf("%d", owner),
		"-g", fmt.Sprintf("%d", group),
		"-m", fmt.Sprintf("%o", mode),
		src, dst)
}

// SetDefaultACL applies a default ACL to dir so files created later on the
// unit inherit the expected permissions.
func (g *Gateway) SetDefaultACL(ctx context.Context, dir, acl string) error {
	return run(ctx, g.r, "setfacl", "-d", "-m", acl, dir)
}

// Sync flushes filesystem buffers before an image is unmounted.
func (g *Gateway) Sync(ctx context.Context) error {
	return run(ctx, g.r, "sync")
}
