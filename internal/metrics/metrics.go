// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostreamfinder_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gostreamfinder_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Catalog (TMDB) metrics
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostreamfinder_catalog_requests_total",
			Help: "Total number of outbound catalog requests",
		},
		[]string{"operation", "status"}, // status: "ok", "error", or the HTTP status code
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gostreamfinder_catalog_request_duration_seconds",
			Help:    "Outbound catalog request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// Resolution outcomes
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostreamfinder_resolutions_total",
			Help: "Content resolutions by outcome",
		},
		[]string{"outcome"}, // "ok", "partial", "no_results", "search_failed"
	)

	ResolutionCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gostreamfinder_resolution_candidates",
			Help:    "Number of candidate titles per resolution",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	// Recommendation metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostreamfinder_recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "failed"
	)

	// Language model metrics
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostreamfinder_llm_requests_total",
			Help: "Total number of language model API calls",
		},
		[]string{"operation", "status"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gostreamfinder_llm_request_duration_seconds",
			Help:    "Language model API latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	EmbeddingCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gostreamfinder_embedding_cache_hits_total",
			Help: "Total number of query embedding cache hits",
		},
	)

	EmbeddingCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gostreamfinder_embedding_cache_misses_total",
			Help: "Total number of query embedding cache misses",
		},
	)

	IndexedDocuments = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gostreamfinder_indexed_documents",
			Help: "Number of documents in the vector index",
		},
		[]string{"index"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gostreamfinder_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostreamfinder_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gostreamfinder_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordHTTPRequest records an inbound request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCatalogRequest records an outbound catalog call. A zero status
// means the request never produced a response.
func RecordCatalogRequest(operation string, status int, duration time.Duration) {
	label := "error"
	switch {
	case status >= 200 && status < 300:
		label = "ok"
	case status > 0:
		label = strconv.Itoa(status)
	}
	CatalogRequestsTotal.WithLabelValues(operation, label).Inc()
	CatalogRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordLLMRequest records a language model call.
func RecordLLMRequest(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	LLMRequestsTotal.WithLabelValues(operation, status).Inc()
	LLMRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
