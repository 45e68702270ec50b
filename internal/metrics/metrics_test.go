package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestTickWebhook(t *testing.T) {
	counter := webhooksMetric.WithLabelValues(OutcomeInvalidSignature)
	before := testutil.ToFloat64(counter)

	TickWebhook(OutcomeInvalidSignature)
	TickWebhook(OutcomeInvalidSignature)

	if got := testutil.ToFloat64(counter); got != before+2 {
		t.Errorf("Expected %v, got %v", before+2, got)
	}
}

func TestSubscribersGauge(t *testing.T) {
	before := testutil.ToFloat64(subscribersMetric)

	SubscriberConnected()
	SubscriberConnected()
	SubscriberDisconnected()

	if got := testutil.ToFloat64(subscribersMetric); got != before+1 {
		t.Errorf("Expected %v, got %v", before+1, got)
	}
}

func TestSetAPIReachable(t *testing.T) {
	SetAPIReachable(true)
	if got := testutil.ToFloat64(apiReachableMetric); got != 1 {
		t.Errorf("Expected 1, got %v", got)
	}
	SetAPIReachable(false)
	if got := testutil.ToFloat64(apiReachableMetric); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
}
