package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Reader.MaxLineLength != DefaultMaxLineLength {
		t.Errorf("expected max line length %d, got %d", DefaultMaxLineLength, cfg.Reader.MaxLineLength)
	}
	if cfg.Reader.MaxResolveIterations != DefaultMaxResolveIterations {
		t.Errorf("expected %d resolve iterations, got %d", DefaultMaxResolveIterations, cfg.Reader.MaxResolveIterations)
	}
	if !cfg.Catalog.Enabled {
		t.Error("expected catalog to be enabled by default")
	}
	if cfg.Catalog.Driver != "sqlite" {
		t.Errorf("expected driver sqlite, got %q", cfg.Catalog.Driver)
	}
	if cfg.Keys.EnvVar != "SIMDXF_USER_KEY" {
		t.Errorf("expected key env var SIMDXF_USER_KEY, got %q", cfg.Keys.EnvVar)
	}
	if !cfg.Telemetry.Logging.Redact {
		t.Error("expected redaction to be enabled by default")
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("expected tracing to be disabled by default")
	}
	if diff := cmp.Diff(DefaultDurationBuckets, cfg.Telemetry.Metrics.DurationBuckets); diff != "" {
		t.Errorf("duration buckets mismatch (-want +got):\n%s", diff)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("expected default configuration to validate, got %v", err)
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := Default()
	again := Default()
	ApplyDefaults(again)

	if diff := cmp.Diff(cfg, again); diff != "" {
		t.Errorf("ApplyDefaults changed a defaulted configuration (-want +got):\n%s", diff)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Project: ProjectConfig{Machine: "WS-17"},
		Catalog: CatalogConfig{Path: "/var/lib/simdxf/catalog.db"},
		Watch:   WatchConfig{Debounce: 2e9},
	}
	ApplyDefaults(cfg)

	if cfg.Project.Machine != "WS-17" {
		t.Errorf("expected machine WS-17, got %q", cfg.Project.Machine)
	}
	if cfg.Catalog.Path != "/var/lib/simdxf/catalog.db" {
		t.Errorf("expected explicit catalog path, got %q", cfg.Catalog.Path)
	}
	if cfg.Watch.Debounce != 2e9 {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Telemetry.Tracing.ServiceName != DefaultTracingService {
		t.Errorf("expected service name %q, got %q", DefaultTracingService, cfg.Telemetry.Tracing.ServiceName)
	}
}
