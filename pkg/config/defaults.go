package config

import (
	"os"
	"time"
)

// Default values for configuration fields.
const (
	// Reader defaults
	DefaultMaxLineLength        = 16 << 20
	DefaultMaxResolveIterations = 64

	// Catalog defaults
	DefaultCatalogEnabled     = true
	DefaultCatalogDriver      = "sqlite"
	DefaultCatalogPath        = "data/catalog.db"
	DefaultCatalogBusyTimeout = 5 * time.Second
	DefaultRetentionDays      = 30
	DefaultRetentionSchedule  = "0 3 * * *"

	// Keys defaults
	DefaultKeysProvider = "env"
	DefaultKeysEnvVar   = "SIMDXF_USER_KEY"

	// Watch defaults
	DefaultWatchDebounce  = 500 * time.Millisecond
	DefaultWatchRecursive = true

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultLoggingRedact      = true
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "simultan"
	DefaultMetricsSubsystem   = "dxf"
	DefaultTracingEnabled     = false
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingService     = "simdxf"
	DefaultOTLPInsecure       = true
	DefaultOTLPTimeout        = 10 * time.Second
)

// DefaultDurationBuckets are the default histogram buckets in seconds.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Default returns a configuration with every field at its default.
// Boolean fields whose default is true can only be turned off by a file
// that starts from Default, which is what LoadConfig does.
func Default() *Config {
	cfg := &Config{
		Catalog: CatalogConfig{Enabled: DefaultCatalogEnabled},
		Watch:   WatchConfig{Recursive: DefaultWatchRecursive},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{Redact: DefaultLoggingRedact},
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
			Tracing: TracingConfig{
				Enabled: DefaultTracingEnabled,
				OTLP:    OTLPConfig{Insecure: DefaultOTLPInsecure},
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for fields that have zero values. It is
// idempotent.
func ApplyDefaults(cfg *Config) {
	if cfg.Project.Machine == "" {
		if host, err := os.Hostname(); err == nil {
			cfg.Project.Machine = host
		}
	}

	if cfg.Reader.MaxLineLength == 0 {
		cfg.Reader.MaxLineLength = DefaultMaxLineLength
	}
	if cfg.Reader.MaxResolveIterations == 0 {
		cfg.Reader.MaxResolveIterations = DefaultMaxResolveIterations
	}

	if cfg.Catalog.Driver == "" {
		cfg.Catalog.Driver = DefaultCatalogDriver
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = DefaultCatalogPath
	}
	if cfg.Catalog.BusyTimeout == 0 {
		cfg.Catalog.BusyTimeout = DefaultCatalogBusyTimeout
	}
	if cfg.Catalog.Retention.Days == 0 {
		cfg.Catalog.Retention.Days = DefaultRetentionDays
	}
	if cfg.Catalog.Retention.Schedule == "" {
		cfg.Catalog.Retention.Schedule = DefaultRetentionSchedule
	}

	if cfg.Keys.Provider == "" {
		cfg.Keys.Provider = DefaultKeysProvider
	}
	if cfg.Keys.EnvVar == "" {
		cfg.Keys.EnvVar = DefaultKeysEnvVar
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Logging.Level == "" {
		t.Logging.Level = DefaultLoggingLevel
	}
	if t.Logging.Format == "" {
		t.Logging.Format = DefaultLoggingFormat
	}

	if t.Metrics.Path == "" {
		t.Metrics.Path = DefaultMetricsPath
	}
	if t.Metrics.Namespace == "" {
		t.Metrics.Namespace = DefaultMetricsNamespace
	}
	if t.Metrics.Subsystem == "" {
		t.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(t.Metrics.DurationBuckets) == 0 {
		t.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	if t.Tracing.Sampler == "" {
		t.Tracing.Sampler = DefaultTracingSampler
	}
	if t.Tracing.SampleRatio == 0 {
		t.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if t.Tracing.Endpoint == "" {
		t.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if t.Tracing.ServiceName == "" {
		t.Tracing.ServiceName = DefaultTracingService
	}
	if t.Tracing.OTLP.Timeout == 0 {
		t.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}
