package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	cmd := Register()

	require.NotNil(t, cmd)
	assert.Equal(t, "register", cmd.Use)
	assert.NotNil(t, cmd.RunE, "register command should have RunE function")
}

func TestRegister_ConfigFlag(t *testing.T) {
	cmd := Register()

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag, "config flag should exist")
	assert.Equal(t, "c", flag.Shorthand)
	assert.Equal(t, "", flag.DefValue)
}

func TestRegister_CountFlag(t *testing.T) {
	cmd := Register()

	flag := cmd.Flags().Lookup("count")
	require.NotNil(t, flag, "count flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "1", flag.DefValue)
}

func TestRegister_TUIFlag(t *testing.T) {
	cmd := Register()

	flag := cmd.Flags().Lookup("tui")
	require.NotNil(t, flag, "tui flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}
