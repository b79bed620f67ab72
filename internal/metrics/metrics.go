// Package metrics exposes prometheus counters for the API. A nil *Collector
// is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yieldvault/internal/insight"
)

const namespace = "yieldvault"

// Collector owns a private registry and the application metrics.
type Collector struct {
	registry             *prometheus.Registry
	insightOutcomes      *prometheus.CounterVec
	investmentsCreated   prometheus.Counter
	investmentsCancelled prometheus.Counter
	logsPurged           prometheus.Counter
	requestDuration      *prometheus.HistogramVec
}

// New creates a collector with Go runtime and process metrics registered.
func New() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		insightOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insight_outcomes_total",
			Help:      "Insight results by capability and the strategy that produced them",
		}, []string{"capability", "outcome"}),
		investmentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "investments_created_total",
			Help:      "Investments created",
		}),
		investmentsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "investments_cancelled_total",
			Help:      "Investments cancelled",
		}),
		logsPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transaction_logs_purged_total",
			Help:      "Transaction log rows removed by retention",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// RecordInsight implements insight.Recorder.
func (c *Collector) RecordInsight(capability string, outcome insight.Outcome) {
	if c == nil {
		return
	}
	c.insightOutcomes.WithLabelValues(capability, string(outcome)).Inc()
}

// InvestmentCreated counts a new investment.
func (c *Collector) InvestmentCreated() {
	if c == nil {
		return
	}
	c.investmentsCreated.Inc()
}

// InvestmentCancelled counts a cancellation.
func (c *Collector) InvestmentCancelled() {
	if c == nil {
		return
	}
	c.investmentsCancelled.Inc()
}

// LogsPurged adds n purged log rows.
func (c *Collector) LogsPurged(n int64) {
	if c == nil || n <= 0 {
		return
	}
	c.logsPurged.Add(float64(n))
}

// ObserveRequest records the latency of a handled request.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	c.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
