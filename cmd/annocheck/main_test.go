package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/annocheck/internal/config"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"validate", "fetch", "cache", "mcp"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestBuildDeps(t *testing.T) {
	d, err := buildDeps()
	require.NoError(t, err)

	assert.NotNil(t, d.fetcher)
	assert.NotNil(t, d.validate)
	assert.Equal(t, 0.8, d.cfg.Validation.Threshold)
}

func TestBuildDepsOverride(t *testing.T) {
	d, err := buildDeps(func(cfg *config.Config) {
		cfg.Validation.Threshold = 0.95
	})
	require.NoError(t, err)
	assert.Equal(t, 0.95, d.cfg.Validation.Threshold)
}

func TestBuildDepsRejectsInvalidOverride(t *testing.T) {
	_, err := buildDeps(func(cfg *config.Config) {
		cfg.Validation.Threshold = 2
	})
	assert.Error(t, err)
}
