package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocksCommand(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "", "blocks", "--dir", env.claudeDir, "--config", env.configPath, "--timezone", "UTC")
	require.NoError(t, err)

	assert.Contains(t, out, "2025-08-01 11:00")
	assert.Contains(t, out, "2025-08-01 16:00")
	assert.Contains(t, out, "$0.05")
	assert.Contains(t, out, "$0.30/hr")
	assert.Contains(t, out, "4h 0m left")
}

func TestBlocksCommandAll(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "", "blocks", "--all", "--dir", env.claudeDir, "--config", env.configPath,
		"--timezone", "UTC", "--pricing-source", "default")
	require.NoError(t, err)
	assert.NotContains(t, out, "No session blocks found")
}
