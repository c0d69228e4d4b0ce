package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFlagDefaults(t *testing.T) {
	dryRunFlag := rootCmd.Flags().Lookup("dry-run")
	require.NotNil(t, dryRunFlag)
	assert.Equal(t, "false", dryRunFlag.DefValue)

	debugDirFlag := rootCmd.Flags().Lookup("debug-dir")
	require.NotNil(t, debugDirFlag)
	assert.Equal(t, "/usr/lib/debug", debugDirFlag.DefValue)

	configFlag := rootCmd.Flags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestRootHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["version"])
	assert.True(t, names["completion"])
	assert.True(t, names["man"])
}

func TestCompletionRejectsUnknownShell(t *testing.T) {
	cmd := completionCmd
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := cmd.Args(cmd, []string{"tcsh"})
	assert.Error(t, err)
}

func TestCompletionGeneratesBash(t *testing.T) {
	var out bytes.Buffer
	completionCmd.SetOut(&out)
	completionCmd.Run(completionCmd, []string{"bash"})
	assert.Contains(t, out.String(), "bash completion")
}

func TestExecuteRunsSubcommand(t *testing.T) {
	var out bytes.Buffer
	completionCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"completion", "zsh"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute(context.Background()))
	assert.Contains(t, out.String(), "compdef")
}
