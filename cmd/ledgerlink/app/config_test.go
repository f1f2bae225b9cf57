package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/ledgerlink/pkg/constants"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, config)

	assert.NotEmpty(t, config.LogFormat)
	assert.Positive(t, config.TopPlaces)
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("SITE_LEDGER", "/data/sites.yaml")
	t.Setenv("TOP_PLACES", "3")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("LOG_FORMAT", "json")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/data/sites.yaml", config.SiteLedger)
	assert.Equal(t, 3, config.TopPlaces)
	assert.Equal(t, 90*time.Second, config.CacheTTL)
	assert.Equal(t, "json", config.LogFormat)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledgerlink.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: /srv/ledgers\nmoney_ledger: /srv/money.yaml\ncache_ttl: 1h\n"), 0o644))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, time.Hour, config.CacheTTL)
	assert.Equal(t, constants.DefaultTopPlaces, config.TopPlaces)

	paths := config.Paths()
	assert.Equal(t, filepath.Join("/srv/ledgers", constants.SiteLedgerFile), paths.Site)
	assert.Equal(t, "/srv/money.yaml", paths.Money)
	assert.Equal(t, filepath.Join("/srv/ledgers", constants.PlaceLedgerFile), paths.Place)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "info"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "info", config.LogLevel)

	config.UpdateFromFlags(false, true, false, "json", "debug")
	assert.True(t, config.Quiet)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}
