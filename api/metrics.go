package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// httpRequestsTotal counts handled requests by route pattern and status code.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// signInAttempts labels outcome as "success", "rejected" or "error".
	signInAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_signin_attempts_total",
			Help: "Total number of sign-in attempts",
		},
		[]string{"outcome"},
	)

	contactMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_contact_messages_total",
			Help: "Total number of contact messages received",
		},
	)

	// notificationFailures counts contact notifications that could not be delivered.
	notificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portfolio_notification_failures_total",
			Help: "Total number of failed owner notifications",
		},
	)
)

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(srw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(srw.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
