package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests The total number of upstream calls by operation and outcome (counter)
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "upstream",
			Name:      "requests_total",
			Help:      "The total number of calls made to the upstream events service",
		},
		[]string{"operation", "outcome"},
	)

	// UpstreamDuration Time spent waiting for the upstream events service (histogram)
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Time spent waiting for the upstream events service",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// UpstreamRetries The total number of retried idempotent upstream queries (counter)
	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "upstream",
			Name:      "retries_total",
			Help:      "The total number of retried upstream queries",
		},
		[]string{"operation"},
	)

	// WidgetMessages The total number of relayed widget messages by inbound and reply type (counter)
	WidgetMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "widget",
			Name:      "messages_total",
			Help:      "The total number of relayed widget messages",
		},
		[]string{"type", "reply"},
	)

	// ExpiredReservations The total number of pending reservations removed by the local backend (counter)
	ExpiredReservations = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reservations",
			Name:      "expired_total",
			Help:      "The total number of expired pending reservations removed",
		},
	)
)
