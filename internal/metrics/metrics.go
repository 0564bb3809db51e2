// Package metrics exposes Prometheus metrics for tool execution. The
// Metrics type satisfies the executor's Observer interface so it can
// be wired straight into executor configuration.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the tool engine
type Metrics struct {
	registry *prometheus.Registry

	ToolExecutionsTotal      *prometheus.CounterVec
	ToolExecutionDuration    *prometheus.HistogramVec
	ToolExecutionErrorsTotal *prometheus.CounterVec
	ToolRetriesTotal         *prometheus.CounterVec
	ToolsRegistered          prometheus.Gauge
}

// New creates and registers all metrics
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		ToolExecutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_executions_total",
				Help: "Total number of tool executions",
			},
			[]string{"tool", "status"},
		),
		ToolExecutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tool_execution_duration_seconds",
				Help:    "Duration of tool executions in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		ToolExecutionErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_execution_errors_total",
				Help: "Total number of failed tool executions by error kind",
			},
			[]string{"tool", "kind"},
		),
		ToolRetriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tool_retries_total",
				Help: "Total number of tool execution retries",
			},
			[]string{"tool"},
		),
		ToolsRegistered: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tools_registered",
				Help: "Number of tools currently registered",
			},
		),
	}

	registry.MustRegister(
		m.ToolExecutionsTotal,
		m.ToolExecutionDuration,
		m.ToolExecutionErrorsTotal,
		m.ToolRetriesTotal,
		m.ToolsRegistered,
	)

	return m
}

// ObserveExecution records one terminal execution outcome. status is
// "success" or the error kind name.
func (m *Metrics) ObserveExecution(toolName, status string, duration time.Duration) {
	m.ToolExecutionsTotal.WithLabelValues(toolName, status).Inc()
	m.ToolExecutionDuration.WithLabelValues(toolName).Observe(duration.Seconds())
	if status != "success" {
		m.ToolExecutionErrorsTotal.WithLabelValues(toolName, status).Inc()
	}
}

// ObserveRetry records one retry of a tool invocation.
func (m *Metrics) ObserveRetry(toolName string) {
	m.ToolRetriesTotal.WithLabelValues(toolName).Inc()
}

// SetToolCount records the current registry size.
func (m *Metrics) SetToolCount(n int) {
	m.ToolsRegistered.Set(float64(n))
}

// Handler returns an HTTP handler for scraping metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
