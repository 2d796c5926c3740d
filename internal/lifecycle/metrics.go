package lifecycle

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects lifecycle metrics. A nil *Metrics records nothing.
type Metrics struct {
	hooksTotal         *prometheus.CounterVec
	hookDuration       *prometheus.HistogramVec
	resourcesTotal     *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
}

// NewMetrics creates the lifecycle metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hooksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "blitzem",
				Subsystem: "lifecycle",
				Name:      "hooks_total",
				Help:      "Total number of lifecycle hook executions by result",
			},
			[]string{"kind", "hook", "result"},
		),
		hookDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "blitzem",
				Subsystem: "lifecycle",
				Name:      "hook_duration_seconds",
				Help:      "Duration of lifecycle hooks in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms to ~80s
			},
			[]string{"kind", "hook"},
		),
		resourcesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "blitzem",
				Subsystem: "lifecycle",
				Name:      "resources_total",
				Help:      "Total number of resources processed by direction and final state",
			},
			[]string{"direction", "state"},
		),
		notificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "blitzem",
				Subsystem: "lifecycle",
				Name:      "notifications_total",
				Help:      "Total number of subscriber notifications by transition",
			},
			[]string{"transition"},
		),
	}
	reg.MustRegister(m.hooksTotal, m.hookDuration, m.resourcesTotal, m.notificationsTotal)
	return m
}

func (m *Metrics) recordHook(kind, hook string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.hooksTotal.WithLabelValues(kind, hook, result).Inc()
	m.hookDuration.WithLabelValues(kind, hook).Observe(duration.Seconds())
}

func (m *Metrics) recordResource(direction Direction, state State) {
	if m == nil {
		return
	}
	m.resourcesTotal.WithLabelValues(string(direction), string(state)).Inc()
}

func (m *Metrics) recordNotification(transition string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(transition).Inc()
}
