package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	APIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pf_api_requests_total",
			Help: "Number of API requests",
		},
		[]string{"method", "path", "status"},
	)
	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pf_api_latency_seconds",
			Help:    "API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	FormFields = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pf_form_fields_total",
			Help: "Number of fields per form",
		},
		[]string{"form"},
	)
	OptionFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pf_option_fetches_total",
			Help: "Dynamic option fetches by outcome",
		},
		[]string{"status"},
	)
	SnapshotWrites = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pf_snapshot_writes_total",
			Help: "Number of snapshot files written",
		},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequests,
		APILatency,
		FormFields,
		OptionFetches,
		SnapshotWrites,
	)
}

// FieldCounter is implemented by stores able to count fields per form.
type FieldCounter interface {
	CountFields() map[string]int
}

// StartFormGauge starts a background job that refreshes the per-form field
// gauge every 30 seconds.
func StartFormGauge(ctx context.Context, store FieldCounter) {
	if store == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				counts := store.CountFields()
				FormFields.Reset()
				for id, n := range counts {
					FormFields.WithLabelValues(id).Set(float64(n))
				}
			}
		}
	}()
}
