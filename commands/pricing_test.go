package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingCommandDefault(t *testing.T) {
	env := setupEnv(t)

	out, err := execute(t, "", "pricing", "--config", env.configPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Pricing source: default")
	assert.Contains(t, out, "claude-opus-4-1-20250805")
	assert.Contains(t, out, "claude-sonnet-4-20250514")
	assert.Contains(t, out, "$15.00")
	assert.Contains(t, out, "$75.00")
}

func TestPricingCommandFile(t *testing.T) {
	env := setupEnv(t)
	path := filepath.Join(t.TempDir(), "prices.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"custom-model": {"input_cost_per_token": 0.000002, "output_cost_per_token": 0.00001}
	}`), 0644))

	out, err := execute(t, "", "pricing", "--config", env.configPath,
		"--pricing-source", "file", "--pricing-file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Pricing source: file")
	assert.Contains(t, out, "custom-model")
	assert.Contains(t, out, "$2.00")
	assert.Contains(t, out, "$10.00")
	assert.NotContains(t, out, "claude-opus-4-1-20250805")
}

func TestPricingCommandFileMissing(t *testing.T) {
	env := setupEnv(t)

	_, err := execute(t, "", "pricing", "--config", env.configPath, "--pricing-source", "file")
	assert.Error(t, err)
}
