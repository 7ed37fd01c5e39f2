package observability

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/troupe/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports actor lifecycle events as Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry
	started  *prometheus.CounterVec
	finished *prometheus.CounterVec
	duration *prometheus.HistogramVec
	running  *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them in a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "troupe_actor_started_total",
				Help: "Number of actors that started running",
			},
			[]string{"kind", "dry"},
		),
		finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "troupe_actor_finished_total",
				Help: "Number of actors that reached a final status",
			},
			[]string{"kind", "status", "dry"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "troupe_actor_duration_seconds",
				Help:    "Duration of executed actors",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "status"},
		),
		running: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "troupe_actor_running",
				Help: "Actors currently running",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(m.started, m.finished, m.duration, m.running)
	return m
}

// Hooks returns lifecycle hooks feeding the metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnActorStart: func(_ context.Context, e *domain.ActorEvent) {
			m.started.WithLabelValues(e.Kind, dryLabel(e.Dry)).Inc()
			m.running.WithLabelValues(e.Kind).Inc()
		},
		OnActorFinish: func(_ context.Context, e *domain.ActorEvent) {
			m.finished.WithLabelValues(e.Kind, string(e.Status), dryLabel(e.Dry)).Inc()
			// Skipped and cancelled nodes never started.
			if e.Status == domain.StatusSkipped || errors.Is(e.Err, domain.ErrCancelled) {
				return
			}
			m.running.WithLabelValues(e.Kind).Dec()
			m.duration.WithLabelValues(e.Kind, string(e.Status)).Observe(e.Duration.Seconds())
		},
	}
}

// Registry exposes the underlying registry (e.g. for tests or extra collectors).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func dryLabel(dry bool) string {
	if dry {
		return "true"
	}
	return "false"
}
