// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_chat_requests_total",
			Help: "Total number of chat requests by outcome (chat, action, offtopic, error)",
		},
		[]string{"outcome"},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_chat_request_duration_seconds",
			Help: "Duration of chat request processing in seconds",
		},
		[]string{"outcome"},
	)

	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "assistant_completion_duration_seconds",
			Help: "Latency of the external completion call in seconds",
		},
	)

	ActionsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_actions_executed_total",
			Help: "Total cart/wishlist actions executed by target and verb",
		},
		[]string{"target", "verb"},
	)
)
