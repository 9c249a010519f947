package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"schools", "score", "browse", "history", "mcp", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	sub := make(map[string]bool)
	for _, c := range historyCmd.Commands() {
		sub[c.Name()] = true
	}
	for _, want := range []string{"status", "clear", "export", "migrate"} {
		assert.True(t, sub[want], "missing history subcommand %s", want)
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"directory-url", "scores-url", "timeout", "filter", "limit", "output", "history-backend"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.NotNil(t, historyMigrateCmd.Flags().Lookup("target-version"))
}

func TestScoreRequiresOneArg(t *testing.T) {
	assert.Error(t, scoreCmd.Args(scoreCmd, nil))
	assert.Error(t, scoreCmd.Args(scoreCmd, []string{"01M292", "02M260"}))
	assert.NoError(t, scoreCmd.Args(scoreCmd, []string{"01M292"}))
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	out := buf.String()
	require.Contains(t, out, "satscout CLI")
	assert.Contains(t, out, "Version: dev")
}

func TestProfilingDisabledIsNoop(t *testing.T) {
	assert.NoError(t, startProfiling())
	assert.NoError(t, stopProfiling())
}
