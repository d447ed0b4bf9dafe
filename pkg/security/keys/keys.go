package keys

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"
)

// ErrInvalidKey is returned when a key does not decode to 16, 24 or 32 bytes.
var ErrInvalidKey = errors.New("invalid key")

// Provider is a files.KeyProvider backed by an external source.
type Provider interface {
	files.KeyProvider

	// Provider returns the provider name (env, file).
	Provider() string

	// Close releases watchers. It is safe to call more than once.
	Close() error
}

// New creates the provider selected by cfg.
func New(cfg config.KeysConfig, logger *slog.Logger) (Provider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Provider {
	case "", "env":
		return NewEnvProvider(cfg.EnvVar), nil
	case "file":
		return NewFileProvider(cfg.File, cfg.Watch, logger)
	default:
		return nil, fmt.Errorf("unknown key provider %q", cfg.Provider)
	}
}

// Lazy returns a provider that is created by New on first use, so a
// missing key file only fails reads of encrypted kinds.
func Lazy(cfg config.KeysConfig, logger *slog.Logger) Provider {
	return &lazyProvider{cfg: cfg, logger: logger}
}

type lazyProvider struct {
	cfg    config.KeysConfig
	logger *slog.Logger

	mu      sync.Mutex
	p       Provider
	err     error
	created bool
}

func (l *lazyProvider) get() (Provider, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.created {
		l.p, l.err = New(l.cfg, l.logger)
		l.created = true
	}
	return l.p, l.err
}

func (l *lazyProvider) Key() ([]byte, error) {
	p, err := l.get()
	if err != nil {
		return nil, err
	}
	return p.Key()
}

func (l *lazyProvider) Provider() string {
	if l.cfg.Provider == "" {
		return "env"
	}
	return l.cfg.Provider
}

// Close closes the underlying provider if it was created.
func (l *lazyProvider) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.p == nil {
		return nil
	}
	return l.p.Close()
}

// Decode parses a hex or base64 encoded key. Surrounding whitespace is
// ignored.
func Decode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, files.ErrNoKey
	}
	if b, err := hex.DecodeString(s); err == nil && validLength(len(b)) {
		return b, nil
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(s); err == nil && validLength(len(b)) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: want 16, 24 or 32 bytes, hex or base64 encoded", ErrInvalidKey)
}

func validLength(n int) bool {
	return n == 16 || n == 24 || n == 32
}
