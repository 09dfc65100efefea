package provisioning

import (
	"testing"

	"github.com/worldcoin/orb-registration/internal/tools"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreflightPhase_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "preflight", NewPreflightPhase().Name())
}

func TestPreflightPhase_MissingRequiredTool(t *testing.T) {
	t.Parallel()
	phase := &PreflightPhase{tools: []tools.Tool{
		{Name: "definitely-not-installed-anywhere", Description: "does not exist", Required: true},
	}}
	ctx := testContext(NewMockObserver())

	err := phase.Provision(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-installed-anywhere")
}

func TestPreflightPhase_MissingOptionalToolWarns(t *testing.T) {
	t.Parallel()
	phase := &PreflightPhase{tools: []tools.Tool{
		{Name: "definitely-not-installed-anywhere", Description: "nice to have", Required: false},
	}}
	observer := NewMockObserver()
	ctx := testContext(observer)

	err := phase.Provision(ctx)

	require.NoError(t, err)
	require.Len(t, observer.warnings, 1)
	assert.Contains(t, observer.warnings[0], "definitely-not-installed-anywhere")
}

func TestPreflightPhase_CoversStandardToolSet(t *testing.T) {
	t.Parallel()
	phase := NewPreflightPhase()

	assert.Len(t, phase.tools, len(tools.Required()))
}
