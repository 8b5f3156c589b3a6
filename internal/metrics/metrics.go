// Package metrics holds the Prometheus collectors for the gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SweepsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parmair_sweeps_total",
		Help: "Completed polling sweeps.",
	})

	SweepsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parmair_sweeps_skipped_total",
		Help: "Sweeps skipped because the previous one was still in flight.",
	})

	SweepDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "parmair_sweep_duration_seconds",
		Help: "Duration of the most recent sweep.",
	})

	ReadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parmair_read_failures_total",
		Help: "Individual register reads that failed.",
	})

	LinkLosses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parmair_link_losses_total",
		Help: "Sweeps abandoned because every read failed, indicating a dead connection.",
	})

	ReconnectFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parmair_reconnect_failures_total",
		Help: "Attempts to re-establish a lost connection that failed.",
	})

	WritesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parmair_writes_total",
		Help: "Register writes dispatched to the device.",
	})

	WriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parmair_write_failures_total",
		Help: "Register writes rejected or failed.",
	})

	RegisterValue = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parmair_register_value",
		Help: "Latest decoded register value, by catalog key.",
	}, []string{"key"})

	RegisterAbsent = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "parmair_register_absent",
		Help: "1 when the optional register reports its hardware as not installed.",
	}, []string{"key"})

	ProbeAttempts = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "parmair_probe_attempts",
		Help: "Signature trials performed by the unit-id convention probe.",
	})
)

// MustRegister installs every collector into the default registry.
func MustRegister() {
	prometheus.MustRegister(
		SweepsTotal,
		SweepsSkipped,
		SweepDuration,
		ReadFailures,
		LinkLosses,
		ReconnectFailures,
		WritesTotal,
		WriteFailures,
		RegisterValue,
		RegisterAbsent,
		ProbeAttempts,
	)
}
