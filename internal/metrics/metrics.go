// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package metrics provides Prometheus instrumentation for the label
// service: API endpoint latency and throughput, label store operations,
// and list cache efficiency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Label Store Metrics
	LabelStoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "label_store_operations_total",
			Help: "Total number of label store operations",
		},
		[]string{"operation", "result"}, // operation: get|put|delete|list, result: ok|not_found|error
	)

	// List Cache Metrics
	LabelCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "label_cache_hits_total",
			Help: "Total number of label list cache hits",
		},
	)

	LabelCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "label_cache_misses_total",
			Help: "Total number of label list cache misses",
		},
	)

	LabelCacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "label_cache_invalidations_total",
			Help: "Total number of label list cache invalidations triggered by writes",
		},
	)

	// Anti-Forgery Token Metrics
	XSRFVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xsrf_verifications_total",
			Help: "Total number of anti-forgery token verifications",
		},
		[]string{"action", "result"}, // result: ok|rejected
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOp records a label store operation outcome.
func RecordStoreOp(operation, result string) {
	LabelStoreOps.WithLabelValues(operation, result).Inc()
}

// RecordCacheHit records a label list cache hit.
func RecordCacheHit() {
	LabelCacheHits.Inc()
}

// RecordCacheMiss records a label list cache miss.
func RecordCacheMiss() {
	LabelCacheMisses.Inc()
}

// RecordCacheInvalidation records a write-triggered cache invalidation.
func RecordCacheInvalidation() {
	LabelCacheInvalidations.Inc()
}

// RecordXSRFVerification records an anti-forgery verification outcome.
func RecordXSRFVerification(action string, ok bool) {
	result := "ok"
	if !ok {
		result = "rejected"
	}
	XSRFVerifications.WithLabelValues(action, result).Inc()
}
