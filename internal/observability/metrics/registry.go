// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed pipeline metrics track fetching and parsing behavior per source.
var (
	// FeedFetchTotal counts fetch attempts by source and outcome.
	FeedFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_total",
			Help: "Total number of feed fetch attempts",
		},
		[]string{"source", "outcome"},
	)

	// FeedFetchDuration measures the duration of one source fetch in seconds.
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Feed fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// ArticlesParsedTotal counts articles successfully parsed per source.
	ArticlesParsedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_parsed_total",
			Help: "Total number of articles parsed from feeds",
		},
		[]string{"source"},
	)

	// FeedItemsSkippedTotal counts items dropped for lacking a usable title and link.
	FeedItemsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_skipped_total",
			Help: "Total number of feed items skipped during parsing",
		},
		[]string{"source"},
	)

	// RefreshTotal counts whole refresh passes by aggregate status.
	RefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_total",
			Help: "Total number of refresh passes by status",
		},
		[]string{"status"},
	)

	// RefreshDuration measures the duration of a whole refresh pass.
	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "refresh_duration_seconds",
			Help:    "Refresh pass duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Merge metrics expose the reconciliation breakdown of each merge pass.
var (
	MergeNewTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "merge_new_articles_total",
			Help: "Articles entering the canonical set for the first time",
		},
	)

	MergeReconciledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "merge_reconciled_articles_total",
			Help: "Incoming articles matched to an existing identity",
		},
	)

	MergeRestoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "merge_restored_state_total",
			Help: "Articles whose user state was restored from the state store",
		},
	)

	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Current size of the canonical article set",
		},
	)
)

// State store metrics track persistence health.
var (
	StateEntriesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "state_entries_total",
			Help: "Current number of persisted article state entries",
		},
	)

	StatePrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "state_pruned_entries_total",
			Help: "State entries evicted by capacity pruning",
		},
	)

	StateQuotaFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "state_quota_fallback_total",
			Help: "Writes that triggered the quota halve-and-retry fallback",
		},
	)

	StateWriteErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "state_write_errors_total",
			Help: "State writes dropped after quota degradation failed",
		},
	)
)

// HTTP metrics track API request patterns and performance.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
