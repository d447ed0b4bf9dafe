package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix starts every environment override.
const EnvPrefix = "SIMDXF_"

// LoadConfig loads configuration from a YAML file. Fields the file omits
// keep their defaults. The result is validated.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration and applies environment
// overrides named SIMDXF_SECTION_FIELD, e.g. SIMDXF_CATALOG_PATH. An empty
// path starts from Default. Environment variables take precedence over the
// file.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	envString("PROJECT_ID", &cfg.Project.ID)
	envString("PROJECT_MACHINE", &cfg.Project.Machine)
	if val := os.Getenv(EnvPrefix + "PROJECT_LINK_DIRS"); val != "" {
		cfg.Project.LinkDirs = strings.Split(val, string(os.PathListSeparator))
	}
	envBool("PROJECT_STRICT_REFERENCES", &cfg.Project.StrictReferences)

	envInt("READER_MAX_LINE_LENGTH", &cfg.Reader.MaxLineLength)
	envInt("READER_MAX_RESOLVE_ITERATIONS", &cfg.Reader.MaxResolveIterations)

	envBool("CATALOG_ENABLED", &cfg.Catalog.Enabled)
	envString("CATALOG_DRIVER", &cfg.Catalog.Driver)
	envString("CATALOG_PATH", &cfg.Catalog.Path)
	envDuration("CATALOG_BUSY_TIMEOUT", &cfg.Catalog.BusyTimeout)
	envInt("CATALOG_RETENTION_DAYS", &cfg.Catalog.Retention.Days)
	envString("CATALOG_RETENTION_SCHEDULE", &cfg.Catalog.Retention.Schedule)

	envString("KEYS_PROVIDER", &cfg.Keys.Provider)
	envString("KEYS_ENV_VAR", &cfg.Keys.EnvVar)
	envString("KEYS_FILE", &cfg.Keys.File)
	envBool("KEYS_WATCH", &cfg.Keys.Watch)

	envDuration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)
	envBool("WATCH_RECURSIVE", &cfg.Watch.Recursive)

	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_LOGGING_REDACT", &cfg.Telemetry.Logging.Redact)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	envString("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

func envString(name string, dst *string) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		*dst = val
	}
}

func envBool(name string, dst *bool) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envInt(name string, dst *int) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*dst = n
		}
	}
}

func envDuration(name string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
