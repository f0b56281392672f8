// Fadehaus - Barbershop Booking and Style Recommendations
// Copyright 2026 Femi A. (fadehaus)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/fadehaus/fadehaus

// Package metrics exposes Prometheus instrumentation for the HTTP API, the
// booking flow, the recommendation engine, and the key-value store.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
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
			Help: "Current number of active API requests",
		},
	)

	// Booking metrics
	BookingsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Total number of confirmed bookings",
		},
		[]string{"shop", "service"},
	)

	BookingsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_completed_total",
			Help: "Total number of appointments marked completed",
		},
	)

	SlotQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_slot_queries_total",
			Help: "Total number of slot availability queries",
		},
	)

	// Recommendation metrics
	RecommendationRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_refreshes_total",
			Help: "Total number of recommendation refreshes",
		},
		[]string{"outcome"}, // "ok", "store_error"
	)

	RecommendationScoreDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_score_duration_seconds",
			Help:    "Duration of catalog scoring runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Feedback metrics
	FeedbackSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submitted_total",
			Help: "Total number of submitted reviews",
		},
		[]string{"rating"},
	)

	// Store metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kvstore_operation_duration_seconds",
			Help:    "Duration of key-value store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kvstore_operation_errors_total",
			Help: "Total number of key-value store operation errors",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordBookingConfirmed records a confirmed booking.
func RecordBookingConfirmed(shopID, service string) {
	BookingsConfirmed.WithLabelValues(shopID, service).Inc()
}

// RecordRecommendationRefresh records a refresh and whether the write stuck.
func RecordRecommendationRefresh(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "store_error"
	}
	RecommendationRefreshes.WithLabelValues(outcome).Inc()
}

// RecordFeedback records a submitted review by rating.
func RecordFeedback(rating int) {
	FeedbackSubmitted.WithLabelValues(strconv.Itoa(rating)).Inc()
}

// RecordStoreOperation records one store operation.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}
