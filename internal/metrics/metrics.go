package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	dyteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dyte_requests_total",
			Help: "Outbound Dyte API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	meetingResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_resolutions_total",
			Help: "Meeting resolution flow results by terminal state",
		},
		[]string{"outcome"},
	)
)

func RecordDyteRequest(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	dyteRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordResolution(outcome string) {
	meetingResolutionsTotal.WithLabelValues(outcome).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware observes request durations labelled by the matched chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		httpRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
