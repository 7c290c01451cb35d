package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rera"

type Metrics struct {
	registry         *prometheus.Registry
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	analysisLatency  *prometheus.HistogramVec
	analysisRequests *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		analysisRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "analysis_requests_total", Help: "Analysis requests by outcome, rejected ones included."},
			[]string{"operation", "outcome"},
		),
		analysisLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "analysis_duration_seconds",
				Help: "Wall clock time of a full analysis including the model call.",
				// model completions take seconds, not milliseconds
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			},
			[]string{"operation", "outcome"},
		),
	}

	m.registry.MustRegister(
		m.httpRequests, m.httpLatency, m.analysisRequests, m.analysisLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(route, method string, status int, dur time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// Call is a scoped timer around one analysis. Create it with StartCall and
// finish it exactly once with Done.
type Call struct {
	metrics   *Metrics
	operation string
	outcome   string
	timer     *prometheus.Timer
}

func (m *Metrics) StartCall(operation string) *Call {
	c := &Call{metrics: m, operation: operation}
	c.timer = prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		m.analysisLatency.WithLabelValues(c.operation, c.outcome).Observe(v)
	}))

	return c
}

// Done records the elapsed time labelled with the outcome of err and returns it.
func (c *Call) Done(err error) time.Duration {
	c.outcome = "success"
	if err != nil {
		c.outcome = "failure"
	}

	c.metrics.analysisRequests.WithLabelValues(c.operation, c.outcome).Inc()

	return c.timer.ObserveDuration()
}
