package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "catalog.path").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration. All validation errors are
// collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError
	errs = append(errs, validateProject(&cfg.Project)...)
	errs = append(errs, validateReader(&cfg.Reader)...)
	errs = append(errs, validateCatalog(&cfg.Catalog)...)
	errs = append(errs, validateKeys(&cfg.Keys)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	if cfg.Watch.Debounce < 0 {
		errs = append(errs, FieldError{Field: "watch.debounce", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateProject(cfg *ProjectConfig) []FieldError {
	var errs []FieldError
	if cfg.ID != "" {
		if _, err := uuid.Parse(cfg.ID); err != nil {
			errs = append(errs, FieldError{Field: "project.id", Message: fmt.Sprintf("invalid GUID %q", cfg.ID)})
		}
	}
	return errs
}

func validateReader(cfg *ReaderConfig) []FieldError {
	var errs []FieldError
	if cfg.MaxLineLength < 1024 {
		errs = append(errs, FieldError{Field: "reader.max_line_length", Message: "must be at least 1024"})
	}
	if cfg.MaxResolveIterations < 1 {
		errs = append(errs, FieldError{Field: "reader.max_resolve_iterations", Message: "must be positive"})
	}
	return errs
}

func validateCatalog(cfg *CatalogConfig) []FieldError {
	var errs []FieldError
	if !cfg.Enabled {
		return errs
	}
	switch cfg.Driver {
	case "sqlite", "sqlite3":
	default:
		errs = append(errs, FieldError{
			Field:   "catalog.driver",
			Message: fmt.Sprintf("must be one of: sqlite, sqlite3 (got %q)", cfg.Driver),
		})
	}
	if cfg.Path == "" {
		errs = append(errs, FieldError{Field: "catalog.path", Message: "must not be empty"})
	}
	if cfg.Retention.Days < 0 {
		errs = append(errs, FieldError{Field: "catalog.retention.days", Message: "must not be negative"})
	}
	if cfg.Retention.MaxRecords < 0 {
		errs = append(errs, FieldError{Field: "catalog.retention.max_records", Message: "must not be negative"})
	}
	if _, err := cron.ParseStandard(cfg.Retention.Schedule); err != nil {
		errs = append(errs, FieldError{
			Field:   "catalog.retention.schedule",
			Message: fmt.Sprintf("invalid cron expression: %v", err),
		})
	}
	return errs
}

func validateKeys(cfg *KeysConfig) []FieldError {
	var errs []FieldError
	switch cfg.Provider {
	case "env":
		if cfg.EnvVar == "" {
			errs = append(errs, FieldError{Field: "keys.env_var", Message: "must not be empty"})
		}
	case "file":
		if cfg.File == "" {
			errs = append(errs, FieldError{Field: "keys.file", Message: "required for the file provider"})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "keys.provider",
			Message: fmt.Sprintf("must be one of: env, file (got %q)", cfg.Provider),
		})
	}
	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level),
		})
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of: json, text, console (got %q)", cfg.Logging.Format),
		})
	}
	for i, p := range cfg.Logging.RedactPatterns {
		if _, err := regexp.Compile(p.Pattern); err != nil {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("telemetry.logging.redact_patterns[%d].pattern", i),
				Message: fmt.Sprintf("invalid regular expression: %v", err),
			})
		}
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "must start with /"})
	}
	for i := 1; i < len(cfg.Metrics.DurationBuckets); i++ {
		if cfg.Metrics.DurationBuckets[i] <= cfg.Metrics.DurationBuckets[i-1] {
			errs = append(errs, FieldError{Field: "telemetry.metrics.duration_buckets", Message: "must be strictly increasing"})
			break
		}
	}

	if cfg.Tracing.Enabled {
		switch cfg.Tracing.Sampler {
		case "always", "never":
		case "ratio":
			if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
				errs = append(errs, FieldError{Field: "telemetry.tracing.sample_ratio", Message: "must be between 0.0 and 1.0"})
			}
		default:
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sampler",
				Message: fmt.Sprintf("must be one of: always, never, ratio (got %q)", cfg.Tracing.Sampler),
			})
		}
		if cfg.Tracing.Endpoint == "" {
			errs = append(errs, FieldError{Field: "telemetry.tracing.endpoint", Message: "required when tracing is enabled"})
		}
	}
	return errs
}
