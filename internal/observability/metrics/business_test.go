package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFeedFetch(t *testing.T) {
	before := testutil.ToFloat64(FeedFetchTotal.WithLabelValues("src-a", "success"))

	RecordFeedFetch("src-a", "success", 120*time.Millisecond)
	RecordFeedFetch("src-a", "success", 80*time.Millisecond)

	after := testutil.ToFloat64(FeedFetchTotal.WithLabelValues("src-a", "success"))
	assert.Equal(t, before+2, after)
}

func TestRecordArticlesParsed_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(ArticlesParsedTotal.WithLabelValues("src-b"))

	RecordArticlesParsed("src-b", 0)
	assert.Equal(t, before, testutil.ToFloat64(ArticlesParsedTotal.WithLabelValues("src-b")))

	RecordArticlesParsed("src-b", 7)
	assert.Equal(t, before+7, testutil.ToFloat64(ArticlesParsedTotal.WithLabelValues("src-b")))
}

func TestRecordMerge_UpdatesGauge(t *testing.T) {
	RecordMerge(3, 2, 1, 42)
	assert.Equal(t, float64(42), testutil.ToFloat64(ArticlesTotal))

	RecordMerge(0, 0, 0, 40)
	assert.Equal(t, float64(40), testutil.ToFloat64(ArticlesTotal))
}

func TestStateMetrics(t *testing.T) {
	UpdateStateEntries(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(StateEntriesTotal))

	prunedBefore := testutil.ToFloat64(StatePrunedTotal)
	RecordStatePruned(0) // no-op
	RecordStatePruned(5)
	assert.Equal(t, prunedBefore+5, testutil.ToFloat64(StatePrunedTotal))

	fallbackBefore := testutil.ToFloat64(StateQuotaFallbackTotal)
	RecordStateQuotaFallback()
	assert.Equal(t, fallbackBefore+1, testutil.ToFloat64(StateQuotaFallbackTotal))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/articles", "200"))

	RecordHTTPRequest("GET", "/api/articles", 200, 5*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/articles", "200"))
	assert.Equal(t, before+1, after)
}
