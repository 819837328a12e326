package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the process collectors. A private registry keeps tests
// independent of the global default registerer.
type Registry struct {
	registry         *prometheus.Registry
	versionsRecorded *prometheus.CounterVec
	approvals        *prometheus.CounterVec
	outboxRelayed    prometheus.Counter
	requestDuration  *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		versionsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cms",
			Subsystem: "pricing",
			Name:      "versions_recorded_total",
			Help:      "Pricing package version rows written, by segment.",
		}, []string{"segment"}),
		approvals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cms",
			Subsystem: "pricing",
			Name:      "approvals_total",
			Help:      "Approvals recorded, by kind (package or version).",
		}, []string{"kind"}),
		outboxRelayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cms",
			Subsystem: "outbox",
			Name:      "relay_cycles_total",
			Help:      "Outbox relay cycles completed without error.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cms",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.versionsRecorded,
		r.approvals,
		r.outboxRelayed,
		r.requestDuration,
	)
	return r
}

func (r *Registry) VersionRecorded(segment string) {
	r.versionsRecorded.WithLabelValues(segment).Inc()
}

func (r *Registry) Approved(kind string) {
	r.approvals.WithLabelValues(kind).Inc()
}

func (r *Registry) RelayCycleCompleted() {
	r.outboxRelayed.Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware records request latency. The route label is the matched
// ServeMux pattern so path parameters do not explode label cardinality.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}
		r.requestDuration.
			WithLabelValues(req.Method, route, strconv.Itoa(recorder.status)).
			Observe(time.Since(started).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
