package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "innkeep_http_requests_total",
		Help: "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "innkeep_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	LedgerEntriesPosted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "innkeep_ledger_entries_posted_total",
		Help: "Ledger entries written, by entry type.",
	}, []string{"type"})

	StaleRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "innkeep_optimistic_retries_total",
		Help: "Writes retried after losing an optimistic version check.",
	})

	ReconcileDrift = promauto.NewCounter(prometheus.CounterOpts{
		Name: "innkeep_reconcile_drift_total",
		Help: "Daily totals corrected by the reconciliation job.",
	})
)
