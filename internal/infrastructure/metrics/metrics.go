// Package metrics declares the service's Prometheus collectors.
// promauto registers everything with the default registry, which the
// router exposes on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transfer metrics
var (
	TransfersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budgeteer_transfers_created_total",
		Help: "Total number of transfers created",
	})
	TransferDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "budgeteer_transfer_duration_seconds",
		Help:    "Duration of transfer operations",
		Buckets: prometheus.DefBuckets,
	})
	TransferAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "budgeteer_transfer_amount_cents",
		Help:    "Transfer amounts in cents",
		Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
	})
	TransferErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budgeteer_transfer_errors_total",
			Help: "Total number of transfer errors by type",
		},
		[]string{"error_type"},
	)
)

// Bill payment metrics
var (
	BillsPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budgeteer_bills_paid_total",
		Help: "Total number of credit card bills paid",
	})
	BillPaymentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "budgeteer_bill_payment_duration_seconds",
		Help:    "Duration of bill payment operations",
		Buckets: prometheus.DefBuckets,
	})
	BillPaymentErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budgeteer_bill_payment_errors_total",
			Help: "Total number of bill payment errors by type",
		},
		[]string{"error_type"},
	)
)

// Goal metrics
var (
	GoalReservations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budgeteer_goal_reservations_total",
		Help: "Total number of goal reservations",
	})
	GoalReleases = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budgeteer_goal_releases_total",
		Help: "Total number of goal releases",
	})
	ReservationAmount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "budgeteer_goal_reservation_amount_cents",
		Help:    "Goal reservation amounts in cents",
		Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
	})
)

// Account metrics
var (
	AccountsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budgeteer_accounts_created_total",
		Help: "Total number of accounts created",
	})
	AccountOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budgeteer_account_operations_total",
			Help: "Total account operations by type",
		},
		[]string{"operation"},
	)
)

// API metrics
var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "budgeteer_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "budgeteer_http_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Outbox metrics
var (
	OutboxPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budgeteer_outbox_published_total",
		Help: "Total outbox events published",
	})
	OutboxErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budgeteer_outbox_errors_total",
		Help: "Total outbox publish errors",
	})
	OutboxBacklog = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "budgeteer_outbox_backlog",
		Help: "Unpublished outbox events seen in the last relay pass",
	})
)

// Overdue sweeper metrics
var OverdueFlagged = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "budgeteer_overdue_flagged_total",
		Help: "Entities flagged overdue by the sweeper",
	},
	[]string{"entity"},
)
