package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "purapata"

// Metrics agrupa los contadores del flujo de publicación.
// Todos los métodos aceptan receptor nil (no-op) para que los tests no tengan que armarlo.
type Metrics struct {
	registry *prometheus.Registry

	photoUploads  *prometheus.CounterVec
	photoCleanups *prometheus.CounterVec
	submissions   *prometheus.CounterVec
	requests      *prometheus.HistogramVec
}

// New crea un registry propio (no el global) para poder instanciar varios routers en tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		photoUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photo_uploads_total",
			Help:      "Photo uploads to object storage by result.",
		}, []string{"result"}),
		photoCleanups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photo_cleanups_total",
			Help:      "Compensating photo deletes by result.",
		}, []string{"result"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_submissions_total",
			Help:      "Listing submissions by operation and terminal state.",
		}, []string{"operation", "state"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "BFF request latency by route pattern and status class.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(m.photoUploads, m.photoCleanups, m.submissions, m.requests)
	return m
}

func (m *Metrics) UploadResult(ok bool) {
	if m == nil {
		return
	}
	m.photoUploads.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) CleanupResult(ok bool) {
	if m == nil {
		return
	}
	m.photoCleanups.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) SubmissionFinished(operation, state string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(operation, state).Inc()
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, status).Observe(seconds)
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer permite leer los valores en tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
