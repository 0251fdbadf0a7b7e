package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand("1.0.0")
	require.NotNil(t, cmd)
	assert.Equal(t, "fleetsync", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand("dev")
	commands := [][]string{
		{"status"},
		{"enqueue"},
		{"measure"},
		{"device", "add"},
		{"device", "remove"},
		{"device", "list"},
		{"settings", "show"},
		{"settings", "set"},
		{"sync"},
		{"retry"},
		{"clear"},
		{"export"},
		{"import"},
		{"daemon"},
	}

	for _, path := range commands {
		t.Run(path[len(path)-1], func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand("dev")

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"db", "relay", "secret"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}
