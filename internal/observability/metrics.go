package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MemeFetchesTotal counts upstream meme catalog fetches by outcome.
	MemeFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memeverse_meme_fetches_total",
		Help: "Total number of upstream meme catalog fetches by outcome",
	}, []string{"outcome"})

	// CacheLookupsTotal counts cache lookups by key and result (hit or miss).
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memeverse_cache_lookups_total",
		Help: "Total number of cache lookups by key and result",
	}, []string{"key", "result"})

	// UploadsTotal counts meme uploads by outcome.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memeverse_uploads_total",
		Help: "Total number of meme uploads by outcome",
	}, []string{"outcome"})

	// CaptionRenderLatency records caption render latency in seconds.
	CaptionRenderLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "memeverse_caption_render_latency_seconds",
		Help:    "Caption render latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// StoreQueryLatency records key-value store query latency by operation.
	StoreQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "memeverse_store_query_latency_seconds",
		Help:    "Key-value store query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// RecordMemeFetch increments the meme fetch counter for the outcome.
func RecordMemeFetch(outcome string) {
	MemeFetchesTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup increments the cache lookup counter for the key and result.
func RecordCacheLookup(key, result string) {
	CacheLookupsTotal.WithLabelValues(key, result).Inc()
}

// RecordUpload increments the upload counter for the outcome.
func RecordUpload(outcome string) {
	UploadsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCaptionRender records the latency of a caption render.
func ObserveCaptionRender(start time.Time) {
	CaptionRenderLatency.Observe(time.Since(start).Seconds())
}

// TrackStoreQuery returns a function that records store query latency when
// called, for use with defer.
func TrackStoreQuery(operation string) func() {
	start := time.Now()
	return func() {
		StoreQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
