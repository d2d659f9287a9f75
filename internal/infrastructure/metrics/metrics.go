package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Count sheet metrics
	SheetsCreated   prometheus.Counter
	SheetsApproved  prometheus.Counter
	SheetsPosted    prometheus.Counter
	SheetsVoided    prometheus.Counter
	PostingDuration prometheus.Histogram
	PostedLines     prometheus.Histogram
	PostingErrors   *prometheus.CounterVec

	// Stock metrics
	MovementsRecorded *prometheus.CounterVec
	ReorderAlerts     prometheus.Counter

	// Order metrics
	OrdersCreated prometheus.Counter
	OrdersVoided  prometheus.Counter
	OrderTotal    prometheus.Histogram

	// Payment metrics
	PaymentsCaptured *prometheus.CounterVec
	PaymentsRefunded *prometheus.CounterVec
	PaymentAmount    prometheus.Histogram
	CaptureDuration  prometheus.Histogram

	// Session metrics
	SessionsOpened prometheus.Counter
	SessionsClosed prometheus.Counter
	OpenSessions   prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisDuration   *prometheus.HistogramVec
	RedisErrors     *prometheus.CounterVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditRecordsCreated *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter
	OutboxPending   prometheus.Gauge
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Count sheet metrics
		SheetsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_sheets_created_total",
			Help: "Total number of count sheets created",
		}),
		SheetsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_sheets_approved_total",
			Help: "Total number of count sheets approved",
		}),
		SheetsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_sheets_posted_total",
			Help: "Total number of count sheets posted",
		}),
		SheetsVoided: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_sheets_voided_total",
			Help: "Total number of count sheets voided",
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "posledger_posting_duration_seconds",
			Help:    "Duration of count sheet posting",
			Buckets: prometheus.DefBuckets,
		}),
		PostedLines: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "posledger_posted_lines",
			Help:    "Lines applied per posted count sheet",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_posting_errors_total",
				Help: "Total count sheet posting errors by type",
			},
			[]string{"error_type"},
		),

		// Stock metrics
		MovementsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_movements_recorded_total",
				Help: "Total stock movements recorded by kind",
			},
			[]string{"kind"},
		),
		ReorderAlerts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_reorder_alerts_total",
			Help: "Total reorder threshold breaches detected",
		}),

		// Order metrics
		OrdersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_orders_created_total",
			Help: "Total number of orders created",
		}),
		OrdersVoided: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_orders_voided_total",
			Help: "Total number of orders voided",
		}),
		OrderTotal: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "posledger_order_total_minor",
			Help:    "Order totals in minor currency units",
			Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 1000000},
		}),

		// Payment metrics
		PaymentsCaptured: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_payments_captured_total",
				Help: "Total payments captured by method",
			},
			[]string{"method"},
		),
		PaymentsRefunded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_payments_refunded_total",
				Help: "Total payments refunded by method",
			},
			[]string{"method"},
		),
		PaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "posledger_payment_amount_minor",
			Help:    "Captured payment amounts in minor currency units",
			Buckets: []float64{100, 1000, 5000, 10000, 50000, 100000, 1000000},
		}),
		CaptureDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "posledger_capture_duration_seconds",
			Help:    "Duration of payment capture operations",
			Buckets: prometheus.DefBuckets,
		}),

		// Session metrics
		SessionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_sessions_opened_total",
			Help: "Total register sessions opened",
		}),
		SessionsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_sessions_closed_total",
			Help: "Total register sessions closed",
		}),
		OpenSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "posledger_open_sessions",
			Help: "Current number of open register sessions",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "posledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "posledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "posledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "posledger_redis_duration_seconds",
				Help:    "Redis operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Audit metrics
		AuditRecordsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "posledger_audit_records_total",
				Help: "Total audit records created",
			},
			[]string{"event"},
		),

		// Outbox metrics
		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "posledger_outbox_errors_total",
			Help: "Total outbox publish errors",
		}),
		OutboxPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "posledger_outbox_pending",
			Help: "Unpublished outbox events seen by the last poll, capped at the batch size",
		}),
	}
}
