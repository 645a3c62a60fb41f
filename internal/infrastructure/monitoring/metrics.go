package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bank_backoffice"

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	TransactionsTotal  *prometheus.CounterVec
	AdjudicationsTotal *prometheus.CounterVec
	LoginsTotal        *prometheus.CounterVec
	SignupsTotal       *prometheus.CounterVec
	PendingRequests    *prometheus.GaugeVec
}

var (
	HTTP = HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests received.",
			},
			[]string{"method", "path", "code"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request latencies.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "code"},
		),
	}

	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Histogram of database query latencies.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		TransactionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_total",
				Help:      "Customer money movements by type and outcome.",
			},
			[]string{"type", "status"},
		),
		AdjudicationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "adjudications_total",
				Help:      "Employee decisions on account and loan requests.",
			},
			[]string{"kind", "action"},
		),
		LoginsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Login attempts by role and outcome.",
			},
			[]string{"role", "status"},
		),
		SignupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signups_total",
				Help:      "Account requests submitted by outcome.",
			},
			[]string{"status"},
		),
		PendingRequests: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "pending_requests",
				Help:      "Requests waiting for an employee decision, refreshed by the backlog job.",
			},
			[]string{"kind"},
		),
	}
)

func RecordHTTPRequest(method, path, code string, duration time.Duration) {
	HTTP.RequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTP.RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordTransaction(txType, status string) {
	Business.TransactionsTotal.WithLabelValues(txType, status).Inc()
}

func RecordAdjudication(kind, action string) {
	Business.AdjudicationsTotal.WithLabelValues(kind, action).Inc()
}

func RecordLogin(role, status string) {
	Business.LoginsTotal.WithLabelValues(role, status).Inc()
}

func RecordSignup(status string) {
	Business.SignupsTotal.WithLabelValues(status).Inc()
}

func SetPendingRequests(kind string, count int) {
	Business.PendingRequests.WithLabelValues(kind).Set(float64(count))
}

// StatusOf maps an operation error onto the status label used by the counters above.
func StatusOf(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
