package config_test

import (
	"testing"

	"github.com/platogo/crdt/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Functions

// TestLoadConfig executes a black-box test on the
// implemented functionalities to load a TOML scenario file.
func TestLoadConfig(t *testing.T) {

	// Try to load a broken scenario file. This should fail.
	_, err := config.LoadConfig("test-broken-config.toml")
	assert.Error(t, err)

	// A structurally valid scenario with out-of-bounds values
	// should fail validation, too.
	_, err = config.LoadConfig("test-invalid-config.toml")
	assert.Error(t, err)

	// Now load a valid scenario.
	conf, err := config.LoadConfig("test-config.toml")
	require.NoError(t, err)

	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, 3, conf.Simulation.Replicas)
	assert.Equal(t, 20, conf.Simulation.Rounds)
	assert.Equal(t, 5, conf.Simulation.OpsPerRound)
	assert.Equal(t, 4, conf.Simulation.SyncEvery)
	assert.Equal(t, int64(42), conf.Simulation.Seed)
	assert.Equal(t, []string{"lobster", "urchin", "kelp"}, conf.Simulation.Elements)
	assert.Equal(t, "", conf.Metrics.PrometheusAddr)
}

// TestLoadConfigDefaults verifies the fallback log level.
func TestLoadConfigDefaults(t *testing.T) {

	conf, err := config.LoadConfig("test-minimal-config.toml")
	require.NoError(t, err)

	assert.Equal(t, "info", conf.LogLevel)
}
