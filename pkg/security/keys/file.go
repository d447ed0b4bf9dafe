package keys

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileProvider reads the key from a file and caches it. With watching
// enabled the cache is dropped whenever the file is written, created,
// renamed or removed.
type FileProvider struct {
	Path  string
	Watch bool

	mu      sync.RWMutex
	key     []byte
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	once    sync.Once
	logger  *slog.Logger
}

// NewFileProvider creates a provider for path. The file must exist.
func NewFileProvider(path string, watch bool, logger *slog.Logger) (*FileProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve key path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("failed to stat key file: %w", err)
	}

	p := &FileProvider{
		Path:   abs,
		Watch:  watch,
		stopCh: make(chan struct{}),
		logger: logger.With("component", "keys.file"),
	}

	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		// Editors and secret mounts replace the file, so the directory is watched.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch key directory: %w", err)
		}
		p.watcher = watcher
		go p.watchLoop()
	}

	p.logger.Info("file key provider started", "watch", watch)
	return p, nil
}

// Key implements files.KeyProvider.
func (p *FileProvider) Key() ([]byte, error) {
	p.mu.RLock()
	if p.key != nil {
		key := p.key
		p.mu.RUnlock()
		return key, nil
	}
	p.mu.RUnlock()

	info, err := os.Stat(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat key file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("key path is not a regular file: %s", p.Path)
	}
	if mode := info.Mode().Perm(); mode != 0o600 && mode != 0o400 {
		return nil, fmt.Errorf("insecure permissions on %s: %o (expected 0600 or 0400)", p.Path, mode)
	}

	// #nosec G304 - the path is fixed at construction
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	key, err := Decode(string(data))
	if err != nil {
		return nil, fmt.Errorf("key file %s: %w", p.Path, err)
	}

	p.mu.Lock()
	p.key = key
	p.mu.Unlock()
	return key, nil
}

// Refresh drops the cached key.
func (p *FileProvider) Refresh() {
	p.mu.Lock()
	p.key = nil
	p.mu.Unlock()
}

// Provider returns "file".
func (p *FileProvider) Provider() string { return "file" }

// Close stops the watcher.
func (p *FileProvider) Close() error {
	var err error
	p.once.Do(func() {
		close(p.stopCh)
		if p.watcher != nil {
			err = p.watcher.Close()
		}
	})
	return err
}

func (p *FileProvider) watchLoop() {
	const changed = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	for {
		select {
		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.Path || event.Op&changed == 0 {
				continue
			}
			p.logger.Debug("key file changed, dropping cached key", "op", event.Op.String())
			p.Refresh()

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("key file watcher error", "error", err)

		case <-p.stopCh:
			return
		}
	}
}
