package main

import (
	"flag"
	"os"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/platogo/crdt/config"
	"github.com/platogo/crdt/sim"
)

// Functions

// initLogger initializes a JSON gokit-logger set
// to the according log level supplied via cli flag.
func initLogger(loglevel string) log.Logger {

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger,
		"ts", log.DefaultTimestampUTC,
		"caller", log.DefaultCaller,
	)

	switch strings.ToLower(loglevel) {
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	return logger
}

func main() {

	// Parse command-line flag that defines a scenario path.
	configFlag := flag.String("config", "scenario.toml", "Provide path to scenario file in TOML syntax.")
	loglevelFlag := flag.String("loglevel", "", "This flag sets the logging level, overriding the scenario file.")
	flag.Parse()

	// Read scenario from file.
	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		initLogger("error").Log(
			"msg", "failed to load the scenario",
			"err", err,
		)
		os.Exit(1)
	}

	loglevel := conf.LogLevel
	if *loglevelFlag != "" {
		loglevel = *loglevelFlag
	}

	logger := initLogger(loglevel)

	// Construct operational counters, exposed via
	// Prometheus when an address is configured.
	metrics := NewSimMetrics(conf.Metrics.PrometheusAddr)
	go runPromHTTP(logger, conf.Metrics.PrometheusAddr)

	level.Info(logger).Log(
		"msg", "starting scenario",
		"replicas", conf.Simulation.Replicas,
		"rounds", conf.Simulation.Rounds,
		"seed", conf.Simulation.Seed,
	)

	cluster := sim.NewCluster(logger, metrics, conf.Simulation)

	if err := cluster.Run(); err != nil {
		level.Error(logger).Log(
			"msg", "scenario failed",
			"err", err,
		)
		os.Exit(2)
	}

	if !cluster.Converged() {
		level.Error(logger).Log("msg", "replicas failed to converge")
		os.Exit(3)
	}

	level.Info(logger).Log(
		"msg", "replicas converged",
		"elements", strings.Join(cluster.Values(), ","),
	)
}
