package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exporterFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token42",
		Subsystem: "audit_exporter",
		Name:      "fetch_total",
		Help:      "Count of attempts to read unexported audit entries.",
	}, []string{"network", "status"})

	exporterFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "token42",
		Subsystem: "audit_exporter",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of reading unexported audit entries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	exporterFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token42",
		Subsystem: "audit_exporter",
		Name:      "flush_total",
		Help:      "Count of batches written to storage.",
	}, []string{"network", "status"})

	exporterFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "token42",
		Subsystem: "audit_exporter",
		Name:      "flush_duration_seconds",
		Help:      "Duration of writing a batch to storage.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	exporterFlushSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "token42",
		Subsystem: "audit_exporter",
		Name:      "flush_size",
		Help:      "Number of entries written per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"network"})

	exporterLastID = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "token42",
		Subsystem: "audit_exporter",
		Name:      "last_exported_id",
		Help:      "Highest audit entry id handed to storage.",
	}, []string{"network"})
)

// AuditExporter tracks metrics for the audit export pipeline.
type AuditExporter struct {
	network string
}

// NewAuditExporter constructs an AuditExporter collector.
func NewAuditExporter(network string) *AuditExporter {
	if network == "" {
		network = "unknown"
	}
	return &AuditExporter{network: network}
}

// ObserveFetch records a read of pending entries from the audit log.
func (m AuditExporter) ObserveFetch(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	exporterFetchTotal.WithLabelValues(m.network, status).Inc()
	exporterFetchDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
}

// ObserveFlush records a batch write.
func (m AuditExporter) ObserveFlush(err error, entries int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	exporterFlushTotal.WithLabelValues(m.network, status).Inc()
	exporterFlushDuration.WithLabelValues(m.network, status).
		Observe(time.Since(started).Seconds())
	exporterFlushSize.WithLabelValues(m.network).Observe(float64(entries))
}

func (m AuditExporter) SetLastID(id uint64) {
	exporterLastID.WithLabelValues(m.network).Set(float64(id))
}
