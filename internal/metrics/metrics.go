// Package metrics exposes dashboard counters to Prometheus.
package metrics

import (
	"net/http"

	"filament_dryer/internal/channel"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dryer_dashboard"

// Metric owns a private registry so tests can build as many as they like.
type Metric struct {
	registry      *prometheus.Registry
	transitions   *prometheus.CounterVec
	connected     prometheus.Gauge
	reconnects    prometheus.Counter
	dropped       prometheus.Counter
	snapshots     *prometheus.CounterVec
	commands      *prometheus.CounterVec
	profileSource *prometheus.CounterVec
}

func New() *Metric {
	m := &Metric{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_transitions_total",
			Help:      "Live channel state transitions by target state.",
		}, []string{"state"}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel_connected",
			Help:      "1 while the live channel is connected.",
		}),
		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_reconnects_scheduled_total",
			Help:      "Reconnect attempts scheduled after a close.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_messages_dropped_total",
			Help:      "Inbound frames discarded because they were not valid snapshots.",
		}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_applied_total",
			Help:      "Snapshots projected onto the dashboard by source.",
		}, []string{"source"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Operator commands by name and result.",
		}, []string{"command", "result"}),
		profileSource: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_catalog_loads_total",
			Help:      "Profile catalog loads by the source that won.",
		}, []string{"source"}),
	}
	m.registry.MustRegister(
		m.transitions, m.connected, m.reconnects, m.dropped,
		m.snapshots, m.commands, m.profileSource,
	)
	return m
}

// StateChanged implements channel.Recorder.
func (m *Metric) StateChanged(s channel.State) {
	m.transitions.WithLabelValues(s.String()).Inc()
	if s == channel.Connected {
		m.connected.Set(1)
	} else {
		m.connected.Set(0)
	}
}

// ReconnectScheduled implements channel.Recorder.
func (m *Metric) ReconnectScheduled() { m.reconnects.Inc() }

// MessageDropped implements channel.Recorder.
func (m *Metric) MessageDropped() { m.dropped.Inc() }

func (m *Metric) SnapshotApplied(source string) {
	m.snapshots.WithLabelValues(source).Inc()
}

func (m *Metric) Command(name, result string) {
	m.commands.WithLabelValues(name, result).Inc()
}

func (m *Metric) ProfilesLoaded(source string) {
	m.profileSource.WithLabelValues(source).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metric) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *Metric) Registry() *prometheus.Registry { return m.registry }
