package cli

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.Name()
	}

	for _, want := range []string{"schedule", "draft", "config", "completion", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootUseName(t *testing.T) {
	assert.Equal(t, "eventorbit", rootCmd.Use)
}

func TestScheduleSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range scheduleCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"edit", "list", "count", "days", "calendar", "export", "pull", "push"} {
		assert.True(t, names[want], want)
	}
}

func TestSetupLoggingVerbose(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.WarnLevel) })
	// Standalone command so shared subcommands are not re-parented.
	cmd := &cobra.Command{Use: "test-app"}
	cmd.Flags().BoolP("verbose", "v", false, "")
	cmd.SetErr(new(bytes.Buffer))
	require.NoError(t, cmd.ParseFlags([]string{"--verbose"}))

	require.NoError(t, setupLogging(cmd, nil))

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestDraftAndConfigSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range append(draftCmd.Commands(), configCmd.Commands()...) {
		names[c.Name()] = true
	}

	for _, want := range []string{"new", "list", "remove", "show", "set", "path"} {
		assert.True(t, names[want], want)
	}
}
