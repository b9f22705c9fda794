// Package metrics holds the Prometheus collectors shared by the
// itinerary and planner services. A nil *Metrics records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	generations       *prometheus.CounterVec
	generationSeconds prometheus.Histogram
	cacheLookups      *prometheus.CounterVec
	droppedPOIs       prometheus.Counter
	plannerEdits      *prometheus.CounterVec
	streamClients     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trafella",
			Name:      "itinerary_generations_total",
			Help:      "Itinerary generation requests by outcome.",
		}, []string{"outcome"}),
		generationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "trafella",
			Name:      "itinerary_generation_seconds",
			Help:      "Time spent generating an itinerary, cache hits included.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trafella",
			Name:      "itinerary_cache_lookups_total",
			Help:      "Itinerary cache lookups by result.",
		}, []string{"result"}),
		droppedPOIs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "trafella",
			Name:      "itinerary_dropped_pois_total",
			Help:      "POIs left out because the trip had no capacity for them.",
		}),
		plannerEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trafella",
			Name:      "planner_edits_total",
			Help:      "Planner edits by operation and outcome.",
		}, []string{"op", "outcome"}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "trafella",
			Name:      "stream_clients",
			Help:      "Connected planner websocket clients.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.generations,
		m.generationSeconds,
		m.cacheLookups,
		m.droppedPOIs,
		m.plannerEdits,
		m.streamClients,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveGeneration(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(outcome).Inc()
	m.generationSeconds.Observe(elapsed.Seconds())
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) DroppedPOIs(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.droppedPOIs.Add(float64(n))
}

func (m *Metrics) PlannerEdit(op, outcome string) {
	if m == nil {
		return
	}
	m.plannerEdits.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) StreamClients(delta int) {
	if m == nil {
		return
	}
	m.streamClients.Add(float64(delta))
}
