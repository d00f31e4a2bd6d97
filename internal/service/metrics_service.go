package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the calendar
// pipeline and the HTTP surface. A nil receiver is a no-op everywhere.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	recompute       *prometheus.HistogramVec
	recomputeStale  prometheus.Counter
	sessionsEmitted prometheus.Histogram
	droppedRecords  prometheus.Counter
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	recompute := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calendar_recompute_duration_seconds",
		Help:    "Duration of calendar source refreshes",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	recomputeStale := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_recompute_stale_total",
		Help: "Recomputes dropped because a newer generation finished first",
	})

	sessionsEmitted := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "calendar_sessions_emitted",
		Help:    "Materialised sessions per query",
		Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
	})

	droppedRecords := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calendar_dropped_records_total",
		Help: "Source records dropped for unparsable date fields",
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total cache misses",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, recompute, recomputeStale, sessionsEmitted, droppedRecords, cacheHits, cacheMisses, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		recompute:       recompute,
		recomputeStale:  recomputeStale,
		sessionsEmitted: sessionsEmitted,
		droppedRecords:  droppedRecords,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveRecompute records the duration and outcome of a source refresh.
func (m *MetricsService) ObserveRecompute(duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.recompute.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordStaleRecompute counts a recompute dropped at apply time.
func (m *MetricsService) RecordStaleRecompute() {
	if m == nil {
		return
	}
	m.recomputeStale.Inc()
}

// ObserveSessionQuery records pipeline output sizes.
func (m *MetricsService) ObserveSessionQuery(emitted, dropped int) {
	if m == nil {
		return
	}
	m.sessionsEmitted.Observe(float64(emitted))
	if dropped > 0 {
		m.droppedRecords.Add(float64(dropped))
	}
}

// RecordCacheOperation counts cache hits and misses.
func (m *MetricsService) RecordCacheOperation(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}
