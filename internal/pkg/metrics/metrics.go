package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RecordsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "agristat_records",
		Help: "Number of records in the current snapshot",
	})
	SnapshotVersion = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "agristat_snapshot_version",
		Help: "Store version of the current snapshot",
	})
	IndexRebuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agristat_index_rebuilds_total",
		Help: "Total number of index rebuilds",
	})
	IndexRebuildDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "agristat_index_rebuild_duration_ms",
		Help:    "Index rebuild duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500},
	})
	WritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agristat_writes_total",
		Help: "Record mutations by operation and outcome",
	}, []string{"op", "result"})
	QueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agristat_queries_total",
		Help: "Filter resolutions by dispatch plan",
	}, []string{"plan"})
	ImportedRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agristat_imported_rows_total",
		Help: "Imported table rows by result",
	}, []string{"result"})
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agristat_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"method", "route", "code"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agristat_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(RecordsTotal)
	prometheus.MustRegister(SnapshotVersion)
	prometheus.MustRegister(IndexRebuildsTotal)
	prometheus.MustRegister(IndexRebuildDurationMs)
	prometheus.MustRegister(WritesTotal)
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(ImportedRowsTotal)
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler { return promhttp.Handler() }
