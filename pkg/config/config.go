package config

import "time"

// Config is the root configuration of the simdxf tool.
type Config struct {
	// Project identifies the calling project and the machine files are
	// read on.
	Project ProjectConfig `yaml:"project"`

	// Reader contains limits applied while reading files.
	Reader ReaderConfig `yaml:"reader"`

	// Catalog contains configuration of the index of scanned files.
	Catalog CatalogConfig `yaml:"catalog"`

	// Keys selects where the key of encrypted user files comes from.
	Keys KeysConfig `yaml:"keys"`

	// Watch contains configuration of the watch command.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProjectConfig describes the calling project.
type ProjectConfig struct {
	// ID is the GUID of the calling project. Ids persisted without a
	// project belong to it.
	ID string `yaml:"id"`

	// Machine is the name links are resolved for.
	// Default: the host name
	Machine string `yaml:"machine"`

	// LinkDirs are searched for linked resources after the recorded links.
	LinkDirs []string `yaml:"link_dirs"`

	// StrictReferences turns unresolved references into a failed read.
	// Default: false
	StrictReferences bool `yaml:"strict_references"`
}

// ReaderConfig contains read limits.
type ReaderConfig struct {
	// MaxLineLength is the longest line the codec accepts.
	// Default: 16 MiB
	MaxLineLength int `yaml:"max_line_length"`

	// MaxResolveIterations bounds reference resolution.
	// Default: 64
	MaxResolveIterations int `yaml:"max_resolve_iterations"`
}

// CatalogConfig contains configuration of the file catalog.
type CatalogConfig struct {
	// Enabled controls whether scans are recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Driver selects the SQLite driver.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the database file.
	// Default: "data/catalog.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// Retention controls pruning of old scan records.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig controls pruning of the catalog.
type RetentionConfig struct {
	// Days is how long scan records are kept. 0 keeps them forever.
	// Default: 30
	Days int `yaml:"days"`

	// Schedule is the cron expression of the pruning job.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`

	// MaxRecords caps the number of scan records. 0 means no cap.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`
}

// KeysConfig selects the key provider of encrypted files.
type KeysConfig struct {
	// Provider is "env" or "file".
	// Default: "env"
	Provider string `yaml:"provider"`

	// EnvVar holds the hex or base64 encoded key for the env provider.
	// Default: "SIMDXF_USER_KEY"
	EnvVar string `yaml:"env_var"`

	// File holds the key for the file provider.
	File string `yaml:"file"`

	// Watch reloads the key file when it changes.
	// Default: false
	Watch bool `yaml:"watch"`
}

// WatchConfig contains configuration of the watch command.
type WatchConfig struct {
	// Debounce collapses bursts of events for the same file.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// Recursive also watches sub directories present at start.
	// Default: true
	Recursive bool `yaml:"recursive"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// Redact masks user names, machine names and key material in logs.
	// Default: true
	Redact bool `yaml:"redact"`

	// RedactPatterns contains additional redaction patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// ListenAddress serves the Prometheus endpoint during watch. Empty
	// disables the endpoint.
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the Prometheus endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "simultan"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "dxf"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets are the histogram buckets of read and write
	// durations in seconds.
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "simdxf"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
