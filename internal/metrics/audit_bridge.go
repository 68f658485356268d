package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bridgeEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token42",
		Subsystem: "audit_bridge",
		Name:      "events_total",
		Help:      "Count of chain events turned into audit entries.",
	}, []string{"event_type", "status"})

	bridgeEventDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "token42",
		Subsystem: "audit_bridge",
		Name:      "event_duration_seconds",
		Help:      "Duration of appending one bridged audit entry.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"event_type", "status"})

	bridgeSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token42",
		Subsystem: "audit_bridge",
		Name:      "skipped_total",
		Help:      "Count of chain events with no audit mapping.",
	}, []string{"event"})

	bridgeQueueLength = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "token42",
		Subsystem: "audit_bridge",
		Name:      "queue_length",
		Help:      "Chain events waiting to be bridged.",
	})
)

// AuditBridge tracks the chain event to audit entry bridge.
type AuditBridge struct{}

func NewAuditBridge() *AuditBridge {
	return &AuditBridge{}
}

// ObserveEvent records one bridged entry.
func (m AuditBridge) ObserveEvent(eventType string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	bridgeEventsTotal.WithLabelValues(eventType, status).Inc()
	bridgeEventDuration.WithLabelValues(eventType, status).Observe(time.Since(started).Seconds())
}

func (m AuditBridge) ObserveSkipped(event string) { bridgeSkippedTotal.WithLabelValues(event).Inc() }
func (m AuditBridge) SetQueueLength(n int)        { bridgeQueueLength.Set(float64(n)) }
