package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the dashboard service.
type Metrics struct {
	FetchRequests *prometheus.CounterVec // labels: outcome={success,failure,empty}
	CacheLookups  *prometheus.CounterVec // labels: result={hit,miss}

	RefreshDuration prometheus.Histogram
	RowsWithData    prometheus.Gauge
	RowsWithoutData prometheus.Gauge
	LastRefreshTime prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FetchRequests,
		m.CacheLookups,
		m.RefreshDuration,
		m.RowsWithData,
		m.RowsWithoutData,
		m.LastRefreshTime,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aqi_dashboard",
			Name:      "fetch_requests_total",
			Help:      "AirNow fetches by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aqi_dashboard",
			Name:      "cache_lookups_total",
			Help:      "Observation cache lookups by result.",
		}, []string{"result"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aqi_dashboard",
			Name:      "table_refresh_duration_seconds",
			Help:      "Duration of a complete reference table refresh.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		RowsWithData: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aqi_dashboard",
			Name:      "table_rows_with_data",
			Help:      "Rows of the enriched table with a populated overall AQI.",
		}),
		RowsWithoutData: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aqi_dashboard",
			Name:      "table_rows_without_data",
			Help:      "Rows of the enriched table with no data for the last refresh.",
		}),
		LastRefreshTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aqi_dashboard",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last completed table refresh.",
		}),
	}
}

// Outcome label values for FetchRequests.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
)

// Result label values for CacheLookups.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)
