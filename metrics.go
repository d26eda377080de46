package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/platogo/crdt/sim"
)

// NewSimMetrics constructs the scenario counters, backed by Prometheus
// when an exposure address is configured and discarded otherwise.
func NewSimMetrics(prometheusAddr string) *sim.Metrics {

	if prometheusAddr == "" {
		return &sim.Metrics{
			OpsApplied:    discard.NewCounter(),
			DeltasShipped: discard.NewCounter(),
			MergesApplied: discard.NewCounter(),
		}
	}

	return &sim.Metrics{
		OpsApplied: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "crdt",
			Subsystem: "sim",
			Name:      "ops_applied_total",
			Help:      "Number of random operations applied across all replicas",
		}, nil),
		DeltasShipped: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "crdt",
			Subsystem: "sim",
			Name:      "deltas_shipped_total",
			Help:      "Number of delta windows shipped during exchanges",
		}, nil),
		MergesApplied: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "crdt",
			Subsystem: "sim",
			Name:      "merges_applied_total",
			Help:      "Number of merges applied at receiving replicas",
		}, nil),
	}
}

func runPromHTTP(logger log.Logger, addr string) {

	if addr == "" {
		level.Debug(logger).Log("msg", "prometheus addr is empty, not exposing prometheus metrics")
		return
	}

	http.Handle("/metrics", promhttp.HandlerFor(prom.DefaultGatherer, promhttp.HandlerOpts{}))

	level.Info(logger).Log("msg", "prometheus handler listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		level.Warn(logger).Log("msg", "failed to serve prometheus metrics", "err", err)
	}
}
