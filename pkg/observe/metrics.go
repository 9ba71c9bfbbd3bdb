package observe

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application counters. A nil *Metrics is valid and records
// nothing, which keeps tests free of registry plumbing.
type Metrics struct {
	upstreamCalls *prometheus.CounterVec
	selections    *prometheus.CounterVec
	searches      *prometheus.CounterVec
	gatherer      prometheus.Gatherer
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		upstreamCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_upstream_requests_total",
				Help: "Upstream API calls by repository, operation and outcome.",
			},
			[]string{"repository", "operation", "outcome"},
		),
		selections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_selections_total",
				Help: "Location selections by final state.",
			},
			[]string{"state"},
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weather_city_searches_total",
				Help: "City searches by outcome.",
			},
			[]string{"outcome"},
		),
		gatherer: reg,
	}

	reg.MustRegister(m.upstreamCalls, m.selections, m.searches)

	return m
}

func (m *Metrics) UpstreamCall(repository, operation string, err error) {
	if m == nil {
		return
	}
	m.upstreamCalls.WithLabelValues(repository, operation, outcome(err)).Inc()
}

func (m *Metrics) Selection(state string) {
	if m == nil {
		return
	}
	m.selections.WithLabelValues(state).Inc()
}

func (m *Metrics) Search(err error) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
