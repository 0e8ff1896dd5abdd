package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dispatch outcomes.
const (
	OutcomeProcessed   = "processed"
	OutcomeRecovered   = "recovered"
	OutcomeFailed      = "failed"
	OutcomeUnsupported = "unsupported"
	OutcomeDuplicate   = "duplicate"
)

var (
	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Webhook events dispatched, by event type and outcome",
		},
		[]string{"event_type", "outcome"},
	)

	WebhookDispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent dispatching a webhook event to its handler",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"event_type"},
	)

	StatusTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "order",
			Name:      "status_transitions_total",
			Help:      "Persisted payment status transitions",
		},
		[]string{"from", "to"},
	)

	SideEffectFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "side_effect_failures_total",
			Help:      "Contained failures of secondary webhook side effects",
		},
		[]string{"event_type", "operation"},
	)

	PayPalRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "paypal",
			Name:      "request_duration_seconds",
			Help:      "PayPal REST API call latency in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20},
		},
		[]string{"operation", "status_code"},
	)
)

func init() {
	Registry.MustRegister(
		WebhookEventsTotal,
		WebhookDispatchDuration,
		StatusTransitionsTotal,
		SideEffectFailuresTotal,
		PayPalRequestDuration,
	)
}
