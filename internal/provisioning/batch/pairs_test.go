package batch

import (
	"errors"
	"testing"

	"github.com/worldcoin/orb-registration/internal/identity"
	"github.com/worldcoin/orb-registration/internal/provisioning"
	testutil "github.com/worldcoin/orb-registration/internal/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairsProvisioner_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "batch pairs", NewPairsProvisioner(nil).Name())
}

func TestPairsProvision_RegistersInventoryOnly(t *testing.T) {
	t.Parallel()
	log := &testutil.CallLog{}
	ctx, observer, _, _ := newDiamondContext(t, log)

	err := NewPairsProvisioner([]Pair{
		{ID: "abcdef12", Name: "hopeful-mongoose"},
		{ID: "deadbeef", Name: "subtle-ocelot"},
	}).Provision(ctx)

	require.NoError(t, err)
	// pairs carry their names, so the management backend is never called
	assert.Equal(t, []string{
		"inventory abcdef12 hopeful-mongoose DIAMOND_EVT true",
		"inventory deadbeef subtle-ocelot DIAMOND_EVT true",
	}, log.Calls())
	assert.Equal(t, []identity.OrbID{"abcdef12", "deadbeef"}, ctx.State.Registered)
	assert.True(t, observer.HasEvent(provisioning.EventOrbRegistered))
}

func TestPairsProvision_NormalizesIDs(t *testing.T) {
	t.Parallel()
	log := &testutil.CallLog{}
	ctx, observer, _, _ := newDiamondContext(t, log)

	err := NewPairsProvisioner([]Pair{{ID: "CAFE", Name: "quiet-ibis"}}).Provision(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"inventory 0000cafe quiet-ibis DIAMOND_EVT true"}, log.Calls())
	assert.Len(t, observer.Warnings, 2)
}

func TestPairsProvision_InvalidIDAborts(t *testing.T) {
	t.Parallel()
	log := &testutil.CallLog{}
	ctx, _, _, _ := newDiamondContext(t, log)

	err := NewPairsProvisioner([]Pair{{ID: "fartoolongid", Name: "x"}}).Provision(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrInvalidIdentity)
	assert.Empty(t, log.Calls())
}

func TestPairsProvision_InventoryFailureAborts(t *testing.T) {
	t.Parallel()
	log := &testutil.CallLog{}
	ctx, _, _, inventory := newDiamondContext(t, log)
	inventory.Err = errors.New("unauthorized")

	err := NewPairsProvisioner([]Pair{
		{ID: "abcdef12", Name: "hopeful-mongoose"},
		{ID: "deadbeef", Name: "subtle-ocelot"},
	}).Provision(ctx)

	require.Error(t, err)
	// the second pair is never attempted
	assert.Equal(t, []string{"inventory abcdef12 hopeful-mongoose DIAMOND_EVT true"}, log.Calls())
	assert.Empty(t, ctx.State.Registered)
}
