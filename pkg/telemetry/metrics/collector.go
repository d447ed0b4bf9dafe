package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric of the simdxf tools. It
// implements files.Observer, so passing it as ReadOptions.Observer or
// WriteOptions.Observer is enough to instrument file I/O.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	files   *FileMetrics
	catalog *CatalogMetrics

	// Cardinality tracking for migration names, which come from
	// registered migrations and are not a closed set.
	cardinalityLimiter *CardinalityLimiter
}

var _ files.Observer = (*Collector)(nil)

// NewCollector creates a collector registering its metrics with registry.
// A nil registry gets a fresh one.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	res, err := files.Components.Read(r, files.ReadOptions{Observer: collector})
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		files:              NewFileMetrics(cfg, registry),
		catalog:            NewCatalogMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(256),
	}
}

// ObserveRead records one file read.
func (c *Collector) ObserveRead(s files.ReadStats) {
	if !c.config.Enabled {
		return
	}
	kind := s.Kind.String()
	c.files.RecordRead(kind, status(s.Err), s.Duration)
	if s.Err != nil {
		return
	}
	c.files.RecordVersion(kind, s.FileVersion)
	c.files.RecordEntities(kind, s.Entities)
	c.files.RecordReferences(kind, s.Resolved, s.Unresolved, s.Foreign)
	c.files.RecordWarnings(kind, s.Warnings)
	for _, m := range s.Migrations {
		name := m.Migration
		if !c.cardinalityLimiter.Allow(name) {
			name = "other"
		}
		c.files.RecordMigration(name, m.Changed(), len(m.Problems))
	}
}

// ObserveWrite records one file write.
func (c *Collector) ObserveWrite(s files.WriteStats) {
	if !c.config.Enabled {
		return
	}
	c.files.RecordWrite(s.Kind.String(), status(s.Err), s.Duration, s.Bytes)
}

// RecordScan records one catalog scan.
func (c *Collector) RecordScan(indexed, failed int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.catalog.RecordScan(indexed, failed, duration)
}

// UpdateCatalogSize sets the number of catalogued files.
func (c *Collector) UpdateCatalogSize(records int64) {
	if !c.config.Enabled {
		return
	}
	c.catalog.UpdateSize(records)
}

// RecordPruned records catalog records removed by retention.
func (c *Collector) RecordPruned(n int64) {
	if !c.config.Enabled {
		return
	}
	c.catalog.RecordPruned(n)
}

// RecordWatchEvent records a file system event handled by the watcher.
func (c *Collector) RecordWatchEvent(op string) {
	if !c.config.Enabled {
		return
	}
	c.catalog.RecordWatchEvent(op)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// status is the status label of a read or write.
func status(err error) string {
	if err == nil {
		return "ok"
	}
	return string(dxferrors.TypeOf(err))
}

func versionLabel(v int) string {
	return strconv.Itoa(v)
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether a label value may be used. Known values are always
// allowed; new ones only while the limit is not reached.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}
	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
