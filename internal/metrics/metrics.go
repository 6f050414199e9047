// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flockbook_db_query_duration_seconds",
			Help:    "Duration of PostgreSQL statements in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flockbook_db_query_errors_total",
			Help: "Total number of failed PostgreSQL statements",
		},
		[]string{"operation", "table", "error_type"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flockbook_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flockbook_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ReportRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flockbook_report_runs_total",
			Help: "Scheduled flock report runs by outcome",
		},
		[]string{"outcome"},
	)
)

// ObserveQuery records the latency of one statement and counts it as an error when err is set.
// pgx.ErrNoRows is an expected outcome and is not counted.
func ObserveQuery(operation, table string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return
	}
	DBQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
}

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func errorType(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	if pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "other"
}
