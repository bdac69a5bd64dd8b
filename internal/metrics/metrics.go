package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Selection
	SelectionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_requests_total",
			Help: "Selection passes by selection type and outcome",
		},
		[]string{"selection_type", "outcome"}, // outcome: "ok", "empty", "invalid", "error"
	)

	SelectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "selection_duration_seconds",
			Help:    "Duration of a full selection pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"selection_type"},
	)

	CategoriesSelected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "selection_categories_selected",
			Help:    "Number of categories returned per selection pass",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)

	// Resolution
	ItemFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resolver_item_fallbacks_total",
			Help: "Item resolutions that fell back to the section-wide pool",
		},
	)

	TopicsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resolver_topic_categories_skipped_total",
			Help: "Selected categories that produced no external topic task",
		},
	)

	// Mastery
	MasteryRecomputes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mastery_recomputes_total",
			Help: "Mastery recompute runs by outcome",
		},
		[]string{"outcome"},
	)

	ProfilesUpserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mastery_profiles_upserted_total",
			Help: "Knowledge profile rows written by recompute runs",
		},
	)

	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)
