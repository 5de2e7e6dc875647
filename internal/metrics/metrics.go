// Package metrics exposes retention pass counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records the outcome of retention passes. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	passes        *prometheus.CounterVec
	passDuration  prometheus.Histogram
	lastSuccess   prometheus.Gauge
	kept          *prometheus.GaugeVec
	dropped       *prometheus.CounterVec
	deleted       *prometheus.CounterVec
	parseFailures *prometheus.CounterVec
}

// New creates the collectors and registers them on reg (the default
// registerer when nil).
func New(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		passes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "passes_total",
				Help:      "Retention passes by trigger and result",
			},
			[]string{"trigger", "result"},
		),
		passDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pass_duration_seconds",
				Help:      "Duration of retention passes",
				Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60},
			},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful pass",
			},
		),
		kept: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "kept_files",
				Help:      "Files kept by the last pass per path",
			},
			[]string{"path"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dropped_files_total",
				Help:      "Files selected for removal per path",
			},
			[]string{"path"},
		),
		deleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deleted_files_total",
				Help:      "Files actually removed per path",
			},
			[]string{"path"},
		),
		parseFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unparsed_files_total",
				Help:      "Filenames that did not match the path's file pattern",
			},
			[]string{"path"},
		),
	}

	reg.MustRegister(
		m.passes,
		m.passDuration,
		m.lastSuccess,
		m.kept,
		m.dropped,
		m.deleted,
		m.parseFailures,
	)

	return m
}

// ObservePath records the partition computed for one path.
func (m *Metrics) ObservePath(path string, kept, dropped, deleted, failures int) {
	if m == nil {
		return
	}
	m.kept.WithLabelValues(path).Set(float64(kept))
	m.dropped.WithLabelValues(path).Add(float64(dropped))
	m.deleted.WithLabelValues(path).Add(float64(deleted))
	m.parseFailures.WithLabelValues(path).Add(float64(failures))
}

// ObservePass records a finished pass.
func (m *Metrics) ObservePass(trigger string, d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.passes.WithLabelValues(trigger, result).Inc()
	m.passDuration.Observe(d.Seconds())
	if err == nil {
		m.lastSuccess.SetToCurrentTime()
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
