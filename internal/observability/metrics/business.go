package metrics

import (
	"strconv"
	"time"
)

// RecordFeedFetch records one per-source fetch attempt with its outcome
// ("success", "transport_error" or "parse_error") and duration.
func RecordFeedFetch(source, outcome string, duration time.Duration) {
	FeedFetchTotal.WithLabelValues(source, outcome).Inc()
	FeedFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordArticlesParsed records the number of articles parsed from a source.
func RecordArticlesParsed(source string, count int) {
	if count > 0 {
		ArticlesParsedTotal.WithLabelValues(source).Add(float64(count))
	}
}

// RecordItemSkipped records one feed item dropped during parsing.
func RecordItemSkipped(source string) {
	FeedItemsSkippedTotal.WithLabelValues(source).Inc()
}

// RecordRefresh records one whole refresh pass.
func RecordRefresh(status string, duration time.Duration) {
	RefreshTotal.WithLabelValues(status).Inc()
	RefreshDuration.Observe(duration.Seconds())
}

// RecordMerge records the reconciliation breakdown of a merge pass and
// updates the canonical set gauge.
func RecordMerge(added, reconciled, restored, total int) {
	MergeNewTotal.Add(float64(added))
	MergeReconciledTotal.Add(float64(reconciled))
	MergeRestoredTotal.Add(float64(restored))
	ArticlesTotal.Set(float64(total))
}

// UpdateStateEntries updates the persisted-state entry gauge.
func UpdateStateEntries(count int) {
	StateEntriesTotal.Set(float64(count))
}

// RecordStatePruned records entries evicted by capacity pruning.
func RecordStatePruned(count int) {
	if count > 0 {
		StatePrunedTotal.Add(float64(count))
	}
}

// RecordStateQuotaFallback records one halve-and-retry degradation.
func RecordStateQuotaFallback() {
	StateQuotaFallbackTotal.Inc()
}

// RecordStateWriteError records a state write dropped after degradation.
func RecordStateWriteError() {
	StateWriteErrorsTotal.Inc()
}

// RecordHTTPRequest records one API request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}
