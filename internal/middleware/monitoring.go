package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
	gateRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "daily_post_gate_rejections_total",
			Help: "Posts rejected because the user already posted today",
		},
	)
)

// InitPrometheus registers the metrics. Call this once from main.go.
func InitPrometheus() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(gateRejections)
}

// CountGateRejection records one daily-post gate denial.
func CountGateRejection() {
	gateRejections.Inc()
}

// Monitor tracks request counts and latencies. c.Path() is the route
// template, so path parameters do not explode the label cardinality.
func Monitor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			// The error handler has not written the response yet, so on
			// error the status comes from the error itself. Unknown error
			// types are what echo's default handler turns into a 500.
			status := c.Response().Status
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			path := c.Path()
			httpRequestsTotal.WithLabelValues(path, c.Request().Method, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(path, c.Request().Method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
