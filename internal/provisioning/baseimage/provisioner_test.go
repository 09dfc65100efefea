package baseimage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/worldcoin/orb-registration/internal/config"
	"github.com/worldcoin/orb-registration/internal/provisioning"
	testutil "github.com/worldcoin/orb-registration/internal/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, builder *testutil.MockImageBuilder) *provisioning.Context {
	t.Helper()
	ctx := provisioning.NewContext(testutil.TestContext(t), testutil.StageProfile(t, config.PlatformPearl), testutil.NewMockObserver())
	ctx.Images = builder
	ctx.WorkDir = t.TempDir()
	ctx.MountDir = t.TempDir()
	return ctx
}

func TestProvisioner_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "base images", NewProvisioner().Name())
}

func TestProvision_BuildsTemplates(t *testing.T) {
	t.Parallel()
	log := &testutil.CallLog{}
	ctx := newContext(t, &testutil.MockImageBuilder{Log: log})

	err := NewProvisioner().Provision(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"build-base"}, log.Calls())

	require.NotNil(t, ctx.State.BaseImages)
	assert.Equal(t, filepath.Join(ctx.WorkDir, "persistent.img"), ctx.State.BaseImages.Persistent)
	assert.FileExists(t, ctx.State.BaseImages.Persistent)
	assert.FileExists(t, ctx.State.BaseImages.PersistentJournaled)
}

func TestProvision_BuildFailure(t *testing.T) {
	t.Parallel()
	log := &testutil.CallLog{}
	ctx := newContext(t, &testutil.MockImageBuilder{Log: log, BuildErr: errors.New("mke2fs: no space left")})

	err := NewProvisioner().Provision(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build base images")
	assert.Contains(t, err.Error(), "no space left")
	assert.Nil(t, ctx.State.BaseImages)
}
