package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Structs

// Config holds all information parsed from
// a supplied scenario file.
type Config struct {
	LogLevel   string
	Simulation Simulation
	Metrics    Metrics
}

// Simulation describes one randomized replication scenario: how many
// replicas participate, how they update their state and how often they
// exchange deltas.
type Simulation struct {
	Replicas    int
	Rounds      int
	OpsPerRound int
	SyncEvery   int
	Seed        int64
	Elements    []string
}

// Metrics configures the exposure of operational counters. An empty
// PrometheusAddr disables the HTTP endpoint and discards all counts.
type Metrics struct {
	PrometheusAddr string
}

// Functions

// LoadConfig reads a scenario file in TOML syntax and validates the
// bounds a runnable simulation depends on.
func LoadConfig(configFile string) (*Config, error) {

	conf := new(Config)

	// Parse values from TOML file into struct.
	if _, err := toml.DecodeFile(configFile, conf); err != nil {
		return nil, errors.Wrapf(err, "failed to read in TOML config file at '%s'", configFile)
	}

	if conf.Simulation.Replicas < 2 {
		return nil, errors.Errorf("scenario needs at least 2 replicas, found %d", conf.Simulation.Replicas)
	}

	if conf.Simulation.Rounds < 1 || conf.Simulation.OpsPerRound < 1 {
		return nil, errors.New("scenario needs at least 1 round with at least 1 operation")
	}

	if conf.Simulation.SyncEvery < 1 {
		return nil, errors.New("scenario needs a sync interval of at least 1 round")
	}

	if len(conf.Simulation.Elements) == 0 {
		return nil, errors.New("scenario needs a non-empty element universe")
	}

	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}

	return conf, nil
}
