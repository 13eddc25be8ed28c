package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	EventsAppended   *prometheus.CounterVec
	AppendDuration   prometheus.Histogram
	AppendErrors     *prometheus.CounterVec
	AppendContention prometheus.Counter

	// Correction metrics
	CorrectionsCreated prometheus.Counter

	// Integrity metrics
	IntegrityChecks    *prometheus.CounterVec
	IntegrityDuration  prometheus.Histogram
	IntegrityViolation prometheus.Counter

	// Balance metrics
	BalanceCacheHits   prometheus.Counter
	BalanceCacheMisses prometheus.Counter

	// Type catalog metrics
	TypesCreated prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger metrics
		EventsAppended: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ammoledger_events_appended_total",
				Help: "Total number of ledger events appended by event type",
			},
			[]string{"event_type"},
		),
		AppendDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ammoledger_append_duration_seconds",
			Help:    "Duration of ledger append operations",
			Buckets: prometheus.DefBuckets,
		}),
		AppendErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ammoledger_append_errors_total",
				Help: "Total number of rejected appends by reason",
			},
			[]string{"reason"},
		),
		AppendContention: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ammoledger_append_contention_total",
			Help: "Total number of appends that timed out waiting for the owner lock",
		}),

		// Correction metrics
		CorrectionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ammoledger_corrections_created_total",
			Help: "Total number of correction events appended",
		}),

		// Integrity metrics
		IntegrityChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ammoledger_integrity_checks_total",
				Help: "Total number of chain verification runs by outcome",
			},
			[]string{"outcome"},
		),
		IntegrityDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ammoledger_integrity_duration_seconds",
			Help:    "Duration of chain verification runs",
			Buckets: prometheus.DefBuckets,
		}),
		IntegrityViolation: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ammoledger_integrity_violations_total",
			Help: "Total number of events that failed hash or chain verification",
		}),

		// Balance metrics
		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ammoledger_balance_cache_hits_total",
			Help: "Total number of balance reads served from cache",
		}),
		BalanceCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ammoledger_balance_cache_misses_total",
			Help: "Total number of balance reads derived from the ledger",
		}),

		// Type catalog metrics
		TypesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ammoledger_types_created_total",
			Help: "Total number of ammunition types created",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ammoledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ammoledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ammoledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ammoledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
