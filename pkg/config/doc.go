// Package config provides configuration for the simdxf tools.
//
// Configuration is read from a YAML file and may be overridden by
// environment variables. Every field has a default, so an empty file (or
// no file at all) yields a working configuration.
//
// # Loading
//
//	cfg, err := config.LoadConfig("simdxf.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("simdxf.yaml")
//
// # Environment Variable Overrides
//
// Variables are named SIMDXF_SECTION_FIELD:
//
//   - SIMDXF_PROJECT_ID overrides project.id
//   - SIMDXF_CATALOG_PATH overrides catalog.path
//   - SIMDXF_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// SIMDXF_PROJECT_LINK_DIRS holds a list separated by the platform's path
// list separator.
//
// # Precedence
//
//  1. Defaults (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation
//
// # Current configuration
//
// Commands share one configuration through Initialize and GetConfig. The
// first configuration that loads stays current; tests swap it with
// SetConfig.
package config
