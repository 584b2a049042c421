package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"score", "personalize", "batch", "assessments", "research"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "exit-readiness", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.True(t, rootCmd.SilenceUsage)
	assert.NotNil(t, rootCmd.PersistentPreRunE)
}

func TestScoreCommand_Flags(t *testing.T) {
	for _, name := range []string{"input", "format", "save", "submission-id"} {
		assert.NotNil(t, scoreCmd.Flags().Lookup(name), "score should have --%s flag", name)
	}
	assert.Equal(t, "json", scoreCmd.Flags().Lookup("format").DefValue)
}

func TestPersonalizeCommand_Flags(t *testing.T) {
	require.NotNil(t, personalizeCmd.Flags().Lookup("input"))
	require.NotNil(t, personalizeCmd.Flags().Lookup("format"))
}

func TestBatchCommand_Flags(t *testing.T) {
	for _, name := range []string{"input", "sheet", "output", "failed", "save", "limit"} {
		assert.NotNil(t, batchCmd.Flags().Lookup(name), "batch should have --%s flag", name)
	}
	assert.Equal(t, "0", batchCmd.Flags().Lookup("limit").DefValue)
}

func TestAssessmentsCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range assessmentsCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"list", "get"} {
		assert.True(t, names[name], "assessments should have subcommand %q", name)
	}

	flag := assessmentsListCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "20", flag.DefValue)
}
