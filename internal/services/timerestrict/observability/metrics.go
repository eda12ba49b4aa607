// Package observability exposes Prometheus metrics for the enforcement loop
// and the admin console.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Join check outcomes.
const (
	JoinAdmitted = "admitted"
	JoinExempt   = "exempt"
	JoinDenied   = "denied"
)

// Metrics holds the collectors on a private registry. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	registry      *prometheus.Registry
	joinChecks    *prometheus.CounterVec
	kicks         prometheus.Counter
	sweeps        *prometheus.CounterVec
	sweepDuration prometheus.Histogram
	restricted    prometheus.Gauge
	commands      *prometheus.CounterVec
}

// NewMetrics registers all collectors, plus Go and process collectors, on a
// fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		joinChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timerestrict_join_checks_total",
				Help: "Join attempts checked against the schedule, by outcome",
			},
			[]string{"outcome"},
		),
		kicks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timerestrict_kicks_total",
			Help: "Players disconnected by sweeps",
		}),
		sweeps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timerestrict_sweeps_total",
				Help: "Sweeps run, by whether access was restricted",
			},
			[]string{"restricted"},
		),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timerestrict_sweep_duration_seconds",
			Help:    "Time spent evaluating and disconnecting in one sweep",
			Buckets: prometheus.DefBuckets,
		}),
		restricted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timerestrict_restricted",
			Help: "1 when the last evaluation found access restricted",
		}),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "timerestrict_admin_commands_total",
				Help: "Admin commands executed, by command and result",
			},
			[]string{"command", "result"},
		),
	}
	m.registry.MustRegister(
		m.joinChecks,
		m.kicks,
		m.sweeps,
		m.sweepDuration,
		m.restricted,
		m.commands,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveJoin counts one join check.
func (m *Metrics) ObserveJoin(outcome string) {
	if m == nil {
		return
	}
	m.joinChecks.WithLabelValues(outcome).Inc()
}

// ObserveRestricted records the latest evaluation result.
func (m *Metrics) ObserveRestricted(restricted bool) {
	if m == nil {
		return
	}
	if restricted {
		m.restricted.Set(1)
		return
	}
	m.restricted.Set(0)
}

// ObserveSweep counts one sweep and the players it disconnected.
func (m *Metrics) ObserveSweep(restricted bool, kicked int) {
	if m == nil {
		return
	}
	label := "false"
	if restricted {
		label = "true"
	}
	m.sweeps.WithLabelValues(label).Inc()
	m.kicks.Add(float64(kicked))
	m.ObserveRestricted(restricted)
}

// SweepTimer starts timing a sweep; call ObserveDuration when it ends.
func (m *Metrics) SweepTimer() *prometheus.Timer {
	if m == nil {
		return prometheus.NewTimer(prometheus.ObserverFunc(func(float64) {}))
	}
	return prometheus.NewTimer(m.sweepDuration)
}

// ObserveCommand counts one admin command.
func (m *Metrics) ObserveCommand(command string, ok bool) {
	if m == nil {
		return
	}
	result := "error"
	if ok {
		result = "ok"
	}
	m.commands.WithLabelValues(command, result).Inc()
}
