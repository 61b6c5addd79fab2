// Package metrics provides Prometheus metrics for content-indexer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookEventsTotal counts webhook payloads by shape, event and outcome.
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_indexer",
			Name:      "webhook_events_total",
			Help:      "Total number of webhook payloads processed",
		},
		[]string{"shape", "event", "outcome"},
	)

	// IndexEntries tracks the number of indexed entries.
	IndexEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "content_indexer",
			Name:      "index_entries",
			Help:      "Number of entries currently in the index",
		},
	)

	// SearchRequestsTotal counts searches by outcome.
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_indexer",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"outcome"},
	)

	// SearchDuration measures search latency.
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "content_indexer",
			Name:      "search_duration_seconds",
			Help:      "Duration of search requests in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"outcome"},
	)

	// SearchCacheTotal counts result cache lookups.
	SearchCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_indexer",
			Name:      "search_cache_total",
			Help:      "Search result cache lookups",
		},
		[]string{"result"},
	)

	// SSESubscribers tracks connected push channel observers.
	SSESubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "content_indexer",
			Name:      "sse_subscribers",
			Help:      "Number of connected change stream observers",
		},
	)

	// BroadcastDroppedTotal counts change events dropped for slow observers.
	BroadcastDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "content_indexer",
			Name:      "broadcast_dropped_total",
			Help:      "Change events dropped because an observer buffer was full",
		},
	)

	// RateLimitedTotal counts requests rejected by the per-IP limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_indexer",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the ingest rate limiter",
		},
		[]string{"path"},
	)

	// ConsumerErrorsTotal counts stream consumer failures by operation.
	ConsumerErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "content_indexer",
			Name:      "consumer_errors_total",
			Help:      "Total number of stream consumer errors",
		},
		[]string{"operation"},
	)
)

// knownEvents bounds the event label; anything else is counted as "other".
var knownEvents = map[string]struct{}{
	"entry.published":   {},
	"entry.updated":     {},
	"entry.unpublished": {},
	"entry.deleted":     {},
}

// RecordWebhook records one processed webhook.
func RecordWebhook(shape, event, outcome string) {
	if _, ok := knownEvents[event]; !ok {
		event = "other"
	}
	WebhookEventsTotal.WithLabelValues(shape, event, outcome).Inc()
}

// SetIndexSize sets the index size gauge.
func SetIndexSize(n int) {
	IndexEntries.Set(float64(n))
}

// RecordSearch records one search request.
func RecordSearch(outcome string, d time.Duration) {
	SearchRequestsTotal.WithLabelValues(outcome).Inc()
	SearchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// RecordSearchCache records a cache hit or miss.
func RecordSearchCache(hit bool) {
	if hit {
		SearchCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	SearchCacheTotal.WithLabelValues("miss").Inc()
}

// RecordConsumerError records a stream consumer error.
func RecordConsumerError(operation string) {
	ConsumerErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordRateLimited records one rejected request for a route pattern.
func RecordRateLimited(path string) {
	RateLimitedTotal.WithLabelValues(path).Inc()
}
