package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/planbeam/solver/pkg/infrastructure/config"
)

// All metrics are nil until InitMetrics runs; the Record helpers and
// middleware no-op in that state so library consumers (and tests) that
// never initialize metrics cannot panic.
var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Solve run metrics
	SolveRunsTotal    *prometheus.CounterVec
	SolveDuration     prometheus.Histogram
	PlannedOrders     *prometheus.CounterVec
	InfeasibleCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	SolveRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_solve_runs_total",
			Help: "Total number of solve runs by outcome",
		},
		[]string{"outcome"},
	)

	SolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_solve_duration_seconds",
			Help:    "Duration of solve runs in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	PlannedOrders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_planned_orders_total",
			Help: "Total number of planned orders emitted by type",
		},
		[]string{"type"},
	)

	InfeasibleCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_infeasible_requirements_total",
			Help: "Total number of requirements marked infeasible",
		},
	)
}

// RecordSolve records the outcome and duration of one solve run
func RecordSolve(outcome string, start time.Time) {
	if SolveRunsTotal == nil || SolveDuration == nil {
		return
	}
	SolveRunsTotal.WithLabelValues(outcome).Inc()
	SolveDuration.Observe(time.Since(start).Seconds())
}

// RecordPlannedOrder counts one emitted planned order by type
func RecordPlannedOrder(orderType string) {
	if PlannedOrders == nil {
		return
	}
	PlannedOrders.WithLabelValues(orderType).Inc()
}

// RecordInfeasible counts one requirement marked infeasible
func RecordInfeasible() {
	if InfeasibleCounter == nil {
		return
	}
	InfeasibleCounter.Inc()
}
