package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.InDelta(t, 28.0, cfg.Valuation.PremiumRate, 0.001)
	assert.InDelta(t, 15.0, cfg.Valuation.TechHubRate, 0.001)
	assert.InDelta(t, 10.0, cfg.Valuation.CityAvgRate, 0.001)
	assert.InDelta(t, 6.0, cfg.Valuation.SuburbRate, 0.001)
	assert.InDelta(t, 0.30, cfg.Valuation.GuardDeviation, 0.0001)
	assert.InDelta(t, 2800.0, cfg.Valuation.ConstructionStandard, 0.001)
	assert.Equal(t, 30, cfg.Baseline.Window)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
server:
  port: 9090
store:
  driver: postgres
  postgresURL: postgres://localhost/realty
llm:
  provider: anthropic
  apiKey: from-file
valuation:
  guardDeviation: 0.25
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "from-file", cfg.LLM.APIKey)
	assert.InDelta(t, 0.25, cfg.Valuation.GuardDeviation, 0.0001)
	assert.InDelta(t, 6.0, cfg.Valuation.SuburbRate, 0.001)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)
	t.Setenv("TVM_REALTY_LLM_APIKEY", "from-env")
	t.Setenv("TVM_REALTY_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "llm.apiKey")

	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.Store.Driver = "memory"
	assert.NoError(t, cfg.Validate())

	cfg.Store.Driver = "mysql"
	assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)

	cfg.Store.Driver = "postgres"
	cfg.Store.PostgresURL = ""
	assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)

	cfg.Store.Driver = "sqlite"
	cfg.LLM.Provider = "gemini"
	assert.ErrorIs(t, cfg.Validate(), ErrConfiguration)
}
