package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/randomizer"
)

// Metrics holds the generator's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Requests *prometheus.CounterVec
	Runs     *prometheus.CounterVec
	Values   prometheus.Counter
	Groups   prometheus.Counter
	Depth    prometheus.Histogram
}

// NewMetrics creates the collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "randomizer_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "randomizer_runs_total",
				Help: "Blueprint runs by outcome",
			},
			[]string{"blueprint", "outcome"},
		),
		Values: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "randomizer_values_total",
			Help: "Values drawn by successful runs",
		}),
		Groups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "randomizer_groups_total",
			Help: "Derived streams opened by composite factories",
		}),
		Depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "randomizer_group_depth",
			Help:    "Stack depth reached when a derived stream is opened",
			Buckets: prometheus.LinearBuckets(1, 1, 8),
		}),
	}
	m.registry.MustRegister(m.Requests, m.Runs, m.Values, m.Groups, m.Depth)
	return m
}

// Hooks feeds the group collectors. Safe for concurrent use.
func (m *Metrics) Hooks() randomizer.Hooks {
	return randomizer.Hooks{
		OnGroup: func(depth int, _ string) {
			m.Groups.Inc()
			m.Depth.Observe(float64(depth))
		},
	}
}

// ObserveRun records the outcome of one run.
func (m *Metrics) ObserveRun(blueprint string, values int, err error) {
	if err != nil {
		m.Runs.WithLabelValues(blueprint, "error").Inc()
		return
	}
	m.Runs.WithLabelValues(blueprint, "ok").Inc()
	m.Values.Add(float64(values))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
