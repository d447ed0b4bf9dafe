package keys

import (
	"fmt"
	"os"
)

// DefaultEnvVar is read when no variable is configured.
const DefaultEnvVar = "SIMDXF_USER_KEY"

// EnvProvider reads the key from an environment variable on every call,
// so a changed environment takes effect without a restart.
type EnvProvider struct {
	Var string
}

// NewEnvProvider creates a provider for the variable name.
func NewEnvProvider(name string) *EnvProvider {
	if name == "" {
		name = DefaultEnvVar
	}
	return &EnvProvider{Var: name}
}

// Key implements files.KeyProvider.
func (p *EnvProvider) Key() ([]byte, error) {
	value, ok := os.LookupEnv(p.Var)
	if !ok || value == "" {
		return nil, fmt.Errorf("key not found in environment (env var: %s)", p.Var)
	}
	key, err := Decode(value)
	if err != nil {
		return nil, fmt.Errorf("env var %s: %w", p.Var, err)
	}
	return key, nil
}

// Provider returns "env".
func (p *EnvProvider) Provider() string { return "env" }

// Close is a no-op.
func (p *EnvProvider) Close() error { return nil }
