// Package metrics exposes probe results and availability percentages as
// Prometheus metrics. A Collector is fed by the scheduler loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamed0406/availcheck/internal/domain"
	"github.com/hamed0406/availcheck/internal/probe"
)

const namespace = "availcheck"

type Collector struct {
	registry *prometheus.Registry

	probes       *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	endpointUp   *prometheus.GaugeVec
	availability *prometheus.GaugeVec
}

// NewCollector registers its metrics on registry, or on a fresh registry
// when registry is nil.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	c := &Collector{
		registry: registry,
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Probes performed, by domain and reason.",
		}, []string{"domain", "reason"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_latency_seconds",
			Help:      "Round-trip time of probes that received a response.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"domain"}),
		endpointUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "endpoint_up",
			Help:      "Whether the last probe of an endpoint was UP (1) or DOWN (0).",
		}, []string{"endpoint"}),
		availability: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "domain_availability_percent",
			Help:      "Cumulative availability percentage per domain since process start.",
		}, []string{"domain"}),
	}
	registry.MustRegister(c.probes, c.latency, c.endpointUp, c.availability)
	return c
}

func (c *Collector) ObserveProbe(ep domain.Endpoint, dom string, res probe.Result) {
	c.probes.WithLabelValues(dom, string(res.Reason)).Inc()
	if res.StatusCode != 0 {
		c.latency.WithLabelValues(dom).Observe(float64(res.LatencyMS) / 1000)
	}
	up := 0.0
	if res.Up {
		up = 1
	}
	c.endpointUp.WithLabelValues(ep.Name).Set(up)
}

func (c *Collector) ObserveReport(rows []domain.Availability) {
	for _, r := range rows {
		c.availability.WithLabelValues(r.Domain).Set(float64(r.Percent))
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
