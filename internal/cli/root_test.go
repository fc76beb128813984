package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gql", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"parse", "query", "ask", "tracks", "commands"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestSessionFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"query", "ask", "tracks"} {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			for _, flag := range []string{"manifest", "db", "tracks", "view"} {
				assert.NotNil(t, subCmd.Flags().Lookup(flag), "flag --%s", flag)
			}
		})
	}
}

func TestAskCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	askCmd, _, err := cmd.Find([]string{"ask"})
	require.NoError(t, err)

	require.NotNil(t, askCmd.Flags().Lookup("ollama-url"))
	modelFlag := askCmd.Flags().Lookup("ollama-model")
	require.NotNil(t, modelFlag)
	assert.Equal(t, "llama3.2", modelFlag.DefValue)
	assert.NotNil(t, askCmd.Flags().Lookup("dry-run"))
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "commands"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
