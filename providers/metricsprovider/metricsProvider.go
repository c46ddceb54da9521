package metricsprovider

import (
	"assetflow/providers"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PrometheusProvider struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	assignments *prometheus.CounterVec
}

func NewPrometheusProvider() providers.MetricsProvider {
	registry := prometheus.NewRegistry()
	p := &PrometheusProvider{
		registry: registry,
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetflow_workflow_transitions_total",
				Help: "Committed workflow status transitions",
			},
			[]string{"workflow", "from", "to"},
		),
		assignments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetflow_assignments_total",
				Help: "Committed assignment changes by action",
			},
			[]string{"action"},
		),
	}
	registry.MustRegister(p.transitions, p.assignments, collectors.NewGoCollector())
	return p
}

func (p *PrometheusProvider) ObserveTransition(workflow, from, to string) {
	p.transitions.WithLabelValues(workflow, from, to).Inc()
}

func (p *PrometheusProvider) ObserveAssignment(action string) {
	p.assignments.WithLabelValues(action).Inc()
}

func (p *PrometheusProvider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
