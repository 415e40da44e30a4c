package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	recomputeDuration prometheus.Histogram
	filterEdits       *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ltn",
			Name:      "http_requests_total",
			Help:      "number of http requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ltn",
			Name:      "http_request_duration_seconds",
			Help:      "latency of http requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		recomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ltn",
			Name:      "shortcut_recompute_duration_seconds",
			Help:      "time spent recomputing the shortcuts of a neighborhood after an edit.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		filterEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ltn",
			Name:      "filter_edits_total",
			Help:      "number of filter edits that changed a neighborhood, by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.requests, m.requestDuration, m.recomputeDuration, m.filterEdits)
	return m
}

// ObserveRecompute is passed to every session as its recompute hook.
func (m *Metrics) ObserveRecompute(elapsed time.Duration) {
	m.recomputeDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) countEdit(kind string) {
	m.filterEdits.WithLabelValues(kind).Inc()
}

func PromeHttpMiddleware(m *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		})
	}
}
