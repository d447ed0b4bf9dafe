package metrics

import (
	"time"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// FileMetrics tracks reads and writes of SIMULTAN files.
//
// Metrics:
//   - simultan_dxf_reads_total: reads by kind and status
//   - simultan_dxf_read_duration_seconds: read duration histogram
//   - simultan_dxf_file_versions_total: reads by kind and declared file version
//   - simultan_dxf_entities: entities registered per read
//   - simultan_dxf_references_total: references by kind and outcome
//   - simultan_dxf_warnings_total: warnings raised while reading
//   - simultan_dxf_migrations_total: migrations applied, by name and effect
//   - simultan_dxf_migration_problems_total: ambiguous data found by migrations
//   - simultan_dxf_writes_total, _write_duration_seconds, _write_size_bytes
type FileMetrics struct {
	readsTotal        *prometheus.CounterVec
	readDuration      *prometheus.HistogramVec
	versionsTotal     *prometheus.CounterVec
	entities          *prometheus.HistogramVec
	referencesTotal   *prometheus.CounterVec
	warningsTotal     *prometheus.CounterVec
	migrationsTotal   *prometheus.CounterVec
	migrationProblems *prometheus.CounterVec
	writesTotal       *prometheus.CounterVec
	writeDuration     *prometheus.HistogramVec
	writeSize         *prometheus.HistogramVec
}

// NewFileMetrics creates and registers file metrics with the provided registry.
func NewFileMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *FileMetrics {
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      name,
			Help:      help,
		}, labels)
	}
	histogram := func(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		}, labels)
	}

	fm := &FileMetrics{
		readsTotal:        counter("reads_total", "Total number of file reads", "kind", "status"),
		readDuration:      histogram("read_duration_seconds", "Duration of file reads in seconds", cfg.DurationBuckets, "kind"),
		versionsTotal:     counter("file_versions_total", "Reads by declared file version", "kind", "version"),
		entities:          histogram("entities", "Entities registered per read", prometheus.ExponentialBuckets(1, 4, 10), "kind"),
		referencesTotal:   counter("references_total", "References seen while resolving", "kind", "outcome"),
		warningsTotal:     counter("warnings_total", "Warnings raised while reading", "kind"),
		migrationsTotal:   counter("migrations_total", "Migrations applied to read data", "migration", "changed"),
		migrationProblems: counter("migration_problems_total", "Ambiguous data reported by migrations", "migration"),
		writesTotal:       counter("writes_total", "Total number of file writes", "kind", "status"),
		writeDuration:     histogram("write_duration_seconds", "Duration of file writes in seconds", cfg.DurationBuckets, "kind"),
		writeSize:         histogram("write_size_bytes", "Size of written files in bytes", prometheus.ExponentialBuckets(1024, 4, 10), "kind"),
	}

	registry.MustRegister(
		fm.readsTotal,
		fm.readDuration,
		fm.versionsTotal,
		fm.entities,
		fm.referencesTotal,
		fm.warningsTotal,
		fm.migrationsTotal,
		fm.migrationProblems,
		fm.writesTotal,
		fm.writeDuration,
		fm.writeSize,
	)
	return fm
}

// RecordRead records a read and its duration.
func (fm *FileMetrics) RecordRead(kind, status string, duration time.Duration) {
	fm.readsTotal.WithLabelValues(kind, status).Inc()
	fm.readDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordVersion records the declared version of a read file.
func (fm *FileMetrics) RecordVersion(kind string, version int) {
	fm.versionsTotal.WithLabelValues(kind, versionLabel(version)).Inc()
}

// RecordEntities records the number of entities a read registered.
func (fm *FileMetrics) RecordEntities(kind string, n int) {
	fm.entities.WithLabelValues(kind).Observe(float64(n))
}

// RecordReferences records resolution outcomes.
func (fm *FileMetrics) RecordReferences(kind string, resolved, unresolved, foreign int) {
	fm.referencesTotal.WithLabelValues(kind, "resolved").Add(float64(resolved))
	fm.referencesTotal.WithLabelValues(kind, "unresolved").Add(float64(unresolved))
	fm.referencesTotal.WithLabelValues(kind, "foreign").Add(float64(foreign))
}

// RecordWarnings records warnings raised while reading.
func (fm *FileMetrics) RecordWarnings(kind string, n int) {
	fm.warningsTotal.WithLabelValues(kind).Add(float64(n))
}

// RecordMigration records one applied migration.
func (fm *FileMetrics) RecordMigration(name string, changed bool, problems int) {
	label := "false"
	if changed {
		label = "true"
	}
	fm.migrationsTotal.WithLabelValues(name, label).Inc()
	if problems > 0 {
		fm.migrationProblems.WithLabelValues(name).Add(float64(problems))
	}
}

// RecordWrite records a write, its duration and size.
func (fm *FileMetrics) RecordWrite(kind, status string, duration time.Duration, bytes int64) {
	fm.writesTotal.WithLabelValues(kind, status).Inc()
	fm.writeDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if status == "ok" {
		fm.writeSize.WithLabelValues(kind).Observe(float64(bytes))
	}
}
