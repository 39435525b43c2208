// Package metrics exposes registry and monitor activity as Prometheus metrics.
//
// Every method is safe to call on a nil *Metrics, so components can take an
// optional recorder without guarding each call site.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "corebase"

// Resource labels used for per-category series.
const (
	ResourceCPU     = "cpu"
	ResourceMemory  = "memory"
	ResourceDisk    = "disk"
	ResourceNetwork = "network"
	ResourceGPU     = "gpu"
)

// Metrics owns a private Prometheus registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	connectionsOpen prometheus.Gauge
	connectionOps   *prometheus.CounterVec
	broadcastFailed prometheus.Counter
	samples         prometheus.Counter
	sampleErrors    *prometheus.CounterVec
	usage           *prometheus.GaugeVec
	alerts          *prometheus.CounterVec
	historySize     prometheus.Gauge
}

// New creates the collectors and registers them, along with the Go runtime
// and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		connectionsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "connections_open",
			Help:      "Connections currently tracked by the registry.",
		}),
		connectionOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "operations_total",
			Help:      "Registry operations by kind and outcome.",
		}, []string{"op", "result"}),
		broadcastFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "broadcast_failures_total",
			Help:      "Per-connection send failures during broadcast.",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "samples_total",
			Help:      "Resource snapshots taken.",
		}),
		sampleErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "sample_errors_total",
			Help:      "Sampler calls that reported a failure.",
		}, []string{"resource"}),
		usage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "usage_percent",
			Help:      "Latest utilisation percentage per resource.",
		}, []string{"resource"}),
		alerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "threshold_alerts_total",
			Help:      "Threshold breaches per resource.",
		}, []string{"resource"}),
		historySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "monitor",
			Name:      "history_samples",
			Help:      "Samples currently retained in history.",
		}),
	}

	m.registry.MustRegister(
		m.connectionsOpen,
		m.connectionOps,
		m.broadcastFailed,
		m.samples,
		m.sampleErrors,
		m.usage,
		m.alerts,
		m.historySize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
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
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SetOpenConnections records the registry size.
func (m *Metrics) SetOpenConnections(n int) {
	if m == nil {
		return
	}
	m.connectionsOpen.Set(float64(n))
}

// ObserveConnectionOp counts one registry operation.
func (m *Metrics) ObserveConnectionOp(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.connectionOps.WithLabelValues(op, result).Inc()
}

// ObserveBroadcastFailures adds n failed sends.
func (m *Metrics) ObserveBroadcastFailures(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.broadcastFailed.Add(float64(n))
}

// ObserveSample records one snapshot's percentages.
func (m *Metrics) ObserveSample(cpu, memory, disk, network, gpu float64) {
	if m == nil {
		return
	}
	m.samples.Inc()
	m.usage.WithLabelValues(ResourceCPU).Set(cpu)
	m.usage.WithLabelValues(ResourceMemory).Set(memory)
	m.usage.WithLabelValues(ResourceDisk).Set(disk)
	m.usage.WithLabelValues(ResourceNetwork).Set(network)
	m.usage.WithLabelValues(ResourceGPU).Set(gpu)
}

// ObserveSampleError counts a failed sampler call.
func (m *Metrics) ObserveSampleError(resource string) {
	if m == nil {
		return
	}
	m.sampleErrors.WithLabelValues(resource).Inc()
}

// ObserveAlert counts a threshold breach.
func (m *Metrics) ObserveAlert(resource string) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(resource).Inc()
}

// SetHistorySize records how many samples history retains.
func (m *Metrics) SetHistorySize(n int) {
	if m == nil {
		return
	}
	m.historySize.Set(float64(n))
}
