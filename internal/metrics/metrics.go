// Package metrics holds the Prometheus collectors for the webhook receiver
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blaaiz_receiver"

// Webhook outcomes
const (
	OutcomeAccepted         = "accepted"
	OutcomeMissingSignature = "missing_signature"
	OutcomeInvalidSignature = "invalid_signature"
	OutcomeInvalidPayload   = "invalid_payload"
)

var (
	webhooksMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhooks_total",
		Help:      "Webhook deliveries received, by outcome",
	}, []string{"outcome"})
	broadcastMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_broadcast_total",
		Help:      "Verified events pushed to stream subscribers",
	})
	droppedMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Events dropped because a subscriber's buffer was full",
	})
	subscribersMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "stream_subscribers",
		Help:      "Open websocket event stream connections",
	})
	apiReachableMetric = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "api_reachable",
		Help:      "1 if the last health check reached the Blaaiz API, else 0",
	})
)

func TickWebhook(outcome string) {
	webhooksMetric.WithLabelValues(outcome).Inc()
}

func TickBroadcast() {
	broadcastMetric.Inc()
}

func TickDropped() {
	droppedMetric.Inc()
}

func SubscriberConnected() {
	subscribersMetric.Inc()
}

func SubscriberDisconnected() {
	subscribersMetric.Dec()
}

func SetAPIReachable(reachable bool) {
	if reachable {
		apiReachableMetric.Set(1)
		return
	}
	apiReachableMetric.Set(0)
}
