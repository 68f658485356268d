package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goodnatureofminers/token42-backend/internal/model"
)

var (
	contractOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token42",
		Subsystem: "contract",
		Name:      "operations_total",
		Help:      "Count of contract entry point calls by outcome.",
	}, []string{"contract", "operation", "status"})
	contractOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "token42",
		Subsystem: "contract",
		Name:      "operation_duration_seconds",
		Help:      "Duration of contract entry point calls.",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
	}, []string{"contract", "operation", "status"})

	miningDifficulty = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "token42",
		Subsystem: "mining",
		Name:      "difficulty",
		Help:      "Current proof-of-work difficulty.",
	})
	miningCurrentBlock = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "token42",
		Subsystem: "mining",
		Name:      "current_block",
		Help:      "Number of the next block to be mined.",
	})

	auditLogEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "token42",
		Subsystem: "audit",
		Name:      "log_entries",
		Help:      "Number of entries in the audit log.",
	})
)

// Contract tracks entry point calls of one contract. The status label is the revert kind.
type Contract struct {
	name string
}

// NewContract constructs a Contract collector for the named contract.
func NewContract(name string) *Contract {
	if name == "" {
		name = "unknown"
	}
	return &Contract{name: name}
}

// Observe records the outcome and duration of a single call.
func (m Contract) Observe(operation string, err error, started time.Time) {
	status := model.KindLabel(err)
	contractOperationsTotal.WithLabelValues(m.name, operation, status).Inc()
	contractOperationDuration.WithLabelValues(m.name, operation, status).Observe(time.Since(started).Seconds())
}

// Mining adds the engine gauges to the contract collector.
type Mining struct {
	Contract
}

func NewMining() *Mining {
	return &Mining{Contract: Contract{name: "mining"}}
}

func (m Mining) SetDifficulty(difficulty uint64) { miningDifficulty.Set(float64(difficulty)) }
func (m Mining) SetCurrentBlock(block uint64)    { miningCurrentBlock.Set(float64(block)) }

// AuditLog adds the entry count gauge to the contract collector.
type AuditLog struct {
	Contract
}

func NewAuditLog() *AuditLog {
	return &AuditLog{Contract: Contract{name: "audit"}}
}

func (m AuditLog) SetLogCount(count uint64) { auditLogEntries.Set(float64(count)) }
