package metrics

import (
	"time"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics tracks the file catalog and the directory watcher.
type CatalogMetrics struct {
	scansTotal   *prometheus.CounterVec
	scanDuration prometheus.Histogram
	records      prometheus.Gauge
	prunedTotal  prometheus.Counter
	watchEvents  *prometheus.CounterVec
}

// NewCatalogMetrics creates and registers catalog metrics.
func NewCatalogMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CatalogMetrics {
	cm := &CatalogMetrics{
		scansTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "catalog_files_total",
				Help:      "Files processed by catalog scans",
			},
			[]string{"status"},
		),
		scanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "catalog_scan_duration_seconds",
				Help:      "Duration of catalog scans in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),
		records: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "catalog_records",
				Help:      "Number of files in the catalog",
			},
		),
		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "catalog_pruned_total",
				Help:      "Catalog records removed by retention",
			},
		),
		watchEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "watch_events_total",
				Help:      "File system events handled by the watcher",
			},
			[]string{"op"},
		),
	}

	registry.MustRegister(
		cm.scansTotal,
		cm.scanDuration,
		cm.records,
		cm.prunedTotal,
		cm.watchEvents,
	)
	return cm
}

// RecordScan records the outcome of a scan.
func (cm *CatalogMetrics) RecordScan(indexed, failed int, duration time.Duration) {
	cm.scansTotal.WithLabelValues("indexed").Add(float64(indexed))
	cm.scansTotal.WithLabelValues("failed").Add(float64(failed))
	cm.scanDuration.Observe(duration.Seconds())
}

// UpdateSize sets the number of catalogued files.
func (cm *CatalogMetrics) UpdateSize(records int64) {
	cm.records.Set(float64(records))
}

// RecordPruned adds removed records.
func (cm *CatalogMetrics) RecordPruned(n int64) {
	cm.prunedTotal.Add(float64(n))
}

// RecordWatchEvent counts one watcher event.
func (cm *CatalogMetrics) RecordWatchEvent(op string) {
	cm.watchEvents.WithLabelValues(op).Inc()
}
