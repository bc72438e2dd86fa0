package metrics

import (
	"time"

	"github.com/goodnatureofminers/txinsight7000-backend/internal/txinsight/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterFetchHeightsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txinsight7000",
		Subsystem: "ingester",
		Name:      "fetch_heights_total",
		Help:      "Count of attempts to fetch new block heights.",
	}, []string{"coin", "network", "status"})

	ingesterFetchHeightsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txinsight7000",
		Subsystem: "ingester",
		Name:      "fetch_heights_duration_seconds",
		Help:      "Duration of fetching new block heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "txinsight7000",
		Subsystem: "ingester",
		Name:      "process_batch_total",
		Help:      "Count of processed batches.",
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txinsight7000",
		Subsystem: "ingester",
		Name:      "process_batch_duration_seconds",
		Help:      "Duration of processing a batch of heights.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterProcessBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txinsight7000",
		Subsystem: "ingester",
		Name:      "process_batch_size",
		Help:      "Number of heights processed per batch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"coin", "network"})

	ingesterProcessHeightDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "txinsight7000",
		Subsystem: "ingester",
		Name:      "process_height_duration_seconds",
		Help:      "Duration of processing a single height.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})
)

// Ingester tracks metrics for the block ingestion pipeline.
type Ingester struct {
	coin    model.Coin
	network model.Network
}

// NewIngester constructs an Ingester metrics collector.
func NewIngester(coin model.Coin, network model.Network) *Ingester {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Ingester{coin: coin, network: network}
}

// ObserveFetchHeights records a height discovery attempt and its duration.
func (m Ingester) ObserveFetchHeights(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterFetchHeightsTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	ingesterFetchHeightsDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}

// ObserveProcessBatch records processing of a batch of heights.
func (m Ingester) ObserveProcessBatch(err error, heights int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterProcessBatchTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	ingesterProcessBatchDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	ingesterProcessBatchSize.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(heights))
}

// ObserveProcessHeight records processing of a single height.
func (m Ingester) ObserveProcessHeight(err error, height uint64, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ingesterProcessHeightDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}
