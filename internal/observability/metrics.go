package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_leads_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_leads_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_leads_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// MatchesComputed tracks scheme match computations
	MatchesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_leads_matches_computed_total",
			Help: "Number of scheme match computations",
		},
		[]string{"outcome"},
	)

	// LeadsCreated tracks lead creation by source
	LeadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_leads_leads_created_total",
			Help: "Number of leads created",
		},
		[]string{"source"},
	)

	// OTPSends tracks one-time passcode issuance
	OTPSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_leads_otp_sends_total",
			Help: "Number of OTP send attempts",
		},
		[]string{"status"},
	)

	// OTPVerifications tracks one-time passcode verification attempts
	OTPVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_leads_otp_verifications_total",
			Help: "Number of OTP verification attempts",
		},
		[]string{"status"},
	)

	// AnalyticsDropped tracks analytics events lost to sink failures
	AnalyticsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "app_leads_analytics_dropped_total",
			Help: "Number of analytics events dropped on write failure",
		},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_leads_active_connections",
			Help: "Number of active connections",
		},
	)
)
