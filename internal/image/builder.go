// Package image builds the persistent ext4 images a pearl unit ships
// with: a small non-journaled image and a larger journaled one, both
// carrying the baseline JSON files and, after personalization, the
// unit's name and token.
package image

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/worldcoin/orb-registration/internal/tools"
)

const (
	PersistentName          = "persistent.img"
	PersistentJournaledName = "persistent-journaled.img"

	PersistentSize          = 1 * 1024 * 1024
	PersistentJournaledSize = 10 * 1024 * 1024
)

const (
	// rootOwner makes the filesystem root writable by the unit's service
	// group while staying root owned.
	rootOwner = "0:1000"

	// defaultACL is inherited by files the unit creates at runtime.
	defaultACL = "u::rwx,g::rwx,o::rx"
)

// Logger is the subset of the run observer the builder needs.
type Logger interface {
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
}

// BaseImages locates the two shared base images in the working
// directory. They are copied per unit, never personalized in place.
type BaseImages struct {
	Persistent          string
	PersistentJournaled string
}

type baselineFile struct {
	name  string
	owner int
	group int
}

// components.json stays root owned; the service user owns the rest.
var baselineFiles = []baselineFile{
	{name: "components.json", owner: 0, group: 1000},
	{name: "calibration.json", owner: 1000, group: 1000},
	{name: "versions.json", owner: 1000, group: 1000},
}

// Builder constructs and personalizes persistent images through the
// host's filesystem tooling.
type Builder struct {
	gw  *tools.Gateway
	log Logger
}

func NewBuilder(gw *tools.Gateway, log Logger) *Builder {
	return &Builder{gw: gw, log: log}
}

// BuildBase creates the two zero-filled images in workDir, formats them
// as ext4 (the small one without a journal), enables ACL support, and
// installs the baseline JSON files from workDir into both. mountDir must
// be an empty directory reserved for the builder.
func (b *Builder) BuildBase(ctx context.Context, workDir, mountDir string) (*BaseImages, error) {
	images := &BaseImages{
		Persistent:          filepath.Join(workDir, PersistentName),
		PersistentJournaled: filepath.Join(workDir, PersistentJournaledName),
	}

	b.log.Infof("creating empty images of size %d and %d", PersistentSize, PersistentJournaledSize)
	if err := writeZeroed(images.Persistent, PersistentSize); err != nil {
		return nil, err
	}
	if err := writeZeroed(images.PersistentJournaled, PersistentJournaledSize); err != nil {
		return nil, err
	}

	b.log.Infof("formatting %s with ext4 (with journal)", PersistentJournaledName)
	if err := b.gw.FormatExt4(ctx, images.PersistentJournaled, rootOwner, true); err != nil {
		return nil, err
	}

	b.log.Infof("formatting %s with ext4 (no journal)", PersistentName)
	if err := b.gw.FormatExt4(ctx, images.Persistent, rootOwner, false); err != nil {
		return nil, err
	}

	for _, img := range []string{images.PersistentJournaled, images.Persistent} {
		if err := b.gw.EnableACL(ctx, img); err != nil {
			return nil, err
		}
	}

	for _, img := range []string{images.Persistent, images.PersistentJournaled} {
		b.log.Infof("mounting %s and installing baseline JSON files", filepath.Base(img))
		err := b.withMount(ctx, img, mountDir, true, func() error {
			for _, f := range baselineFiles {
				src := filepath.Join(workDir, f.name)
				if err := b.gw.Install(ctx, src, filepath.Join(mountDir, f.name), f.owner, f.group, 0o664); err != nil {
					return err
				}
			}
			if err := b.gw.SetDefaultACL(ctx, mountDir, defaultACL); err != nil {
				return err
			}
			return b.gw.Sync(ctx)
		})
		if err != nil {
			return nil, err
		}
	}

	return images, nil
}

// Personalize mounts one unit's copied image and installs the name and
// token files from the unit's artifact bundle, root owned, mode 0644.
// The destination file names inside the image match the source names.
func (b *Builder) Personalize(ctx context.Context, imagePath, mountDir, namePath, tokenPath string) error {
	return b.withMount(ctx, imagePath, mountDir, false, func() error {
		for _, src := range []string{namePath, tokenPath} {
			if err := b.gw.Install(ctx, src, filepath.Join(mountDir, filepath.Base(src)), 0, 0, 0o644); err != nil {
				return err
			}
		}
		return b.gw.Sync(ctx)
	})
}

// withMount mounts image at dir, runs fn, and unmounts on every exit
// path. When both fn and the unmount fail, fn's error wins and the
// unmount failure is logged.
func (b *Builder) withMount(ctx context.Context, image, dir string, loop bool, fn func() error) (err error) {
	if err := b.gw.Mount(ctx, image, dir, loop); err != nil {
		return err
	}
	defer func() {
		// The mount must be released even when ctx is already done.
		if uerr := b.gw.Unmount(context.Background(), dir); uerr != nil {
			if err == nil {
				err = uerr
			} else {
				b.log.Warnf("unmount %s after failure: %v", dir, uerr)
			}
		}
	}()
	return fn()
}

// writeZeroed creates a fully allocated zero-filled file. The images are
// deliberately not sparse so copying and flashing them behaves
// predictably on the factory line.
func writeZeroed(path string, size int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image %s: %w", path, err)
	}

	buf := make([]byte, 1024*1024)
	var written int64
	for written < size {
		chunk := size - written
		if chunk > int64(len(buf)) {
			chunk = int64(len(buf))
		}
		if _, err := f.Write(buf[:chunk]); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to zero-fill image %s: %w", path, err)
		}
		written += chunk
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close image %s: %w", path, err)
	}
	return nil
}
