package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decodeAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txinsight7000",
		Subsystem: "decode_api",
		Name:      "requests_total",
		Help:      "Count of decode API requests.",
	}, []string{"operation", "status"})
	decodeAPIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txinsight7000",
		Subsystem: "decode_api",
		Name:      "request_duration_seconds",
		Help:      "Duration of decode API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// DecodeAPI tracks metrics for the transaction decode HTTP API.
type DecodeAPI struct{}

// NewDecodeAPI creates a DecodeAPI metrics collector.
func NewDecodeAPI() *DecodeAPI {
	return &DecodeAPI{}
}

// Observe records a decode API request outcome and duration.
func (m DecodeAPI) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	decodeAPIRequestsTotal.WithLabelValues(operation, status).Inc()
	decodeAPIRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}
