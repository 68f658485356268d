package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deploymentStoreRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token42",
		Subsystem: "deployment_store",
		Name:      "operations_total",
		Help:      "Count of deployment registry operations.",
	}, []string{"operation", "status"})
	deploymentStoreRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "token42",
		Subsystem: "deployment_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of deployment registry operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

type DeploymentStore struct{}

func NewDeploymentStore() *DeploymentStore {
	return &DeploymentStore{}
}

func (m DeploymentStore) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	deploymentStoreRequestsTotal.WithLabelValues(operation, status).Inc()
	deploymentStoreRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
