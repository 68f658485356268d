package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token42",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Count of REST requests.",
	}, []string{"method", "route", "code"})
	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "token42",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Duration of REST requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})

	powSearchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "token42",
		Subsystem: "api",
		Name:      "nonce_search_total",
		Help:      "Count of server-side nonce searches.",
	}, []string{"status"})
	powSearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "token42",
		Subsystem: "api",
		Name:      "nonce_search_duration_seconds",
		Help:      "Duration of server-side nonce searches.",
		Buckets:   prometheus.ExponentialBuckets(.001, 4, 10),
	}, []string{"status"})
)

// API tracks REST handler metrics.
type API struct{}

func NewAPI() *API {
	return &API{}
}

// ObserveRequest records a served request. route is the registered pattern, not the raw
// path, to keep label cardinality bounded.
func (m API) ObserveRequest(method, route string, code int, started time.Time) {
	c := strconv.Itoa(code)
	apiRequestsTotal.WithLabelValues(method, route, c).Inc()
	apiRequestDuration.WithLabelValues(method, route, c).Observe(time.Since(started).Seconds())
}

// ObserveSearch records a nonce search run on behalf of a client.
func (m API) ObserveSearch(err error, started time.Time) {
	status := "found"
	if err != nil {
		status = "error"
	}
	powSearchTotal.WithLabelValues(status).Inc()
	powSearchDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}
