package config

import "sync/atomic"

// current is the configuration the simdxf commands share. Commands set it
// once while starting; tests replace it through SetConfig.
var current atomic.Pointer[Config]

// Initialize loads the configuration at path (Default when empty), applies
// the SIMDXF_* environment overrides and makes it current. A configuration
// that is already current is kept, so only the first successful call loads
// a file. A failed call leaves nothing behind and may be retried.
func Initialize(path string) error {
	if current.Load() != nil {
		return nil
	}
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return err
	}
	current.CompareAndSwap(nil, cfg)
	return nil
}

// GetConfig returns the current configuration, or nil before Initialize.
func GetConfig() *Config {
	return current.Load()
}

// SetConfig replaces the current configuration. nil clears it.
func SetConfig(cfg *Config) {
	current.Store(cfg)
}
