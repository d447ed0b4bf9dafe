package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"
)

// Watch operations passed to Watcher.OnEvent.
const (
	OpIndex  = "index"
	OpRemove = "remove"
	OpError  = "error"
)

// Watcher keeps the catalog current while files change. Bursts of events
// for one file, as produced by editors saving, are collapsed into a single
// read once the file was quiet for the debounce interval.
type Watcher struct {
	scanner   *Scanner
	debounce  time.Duration
	recursive bool
	logger    *slog.Logger

	// OnEvent is called after each catalog update with one of the Op
	// constants.
	OnEvent func(op string)

	mu     sync.Mutex
	timers map[string]*time.Timer
	due    chan string
	ready  chan struct{}
}

// NewWatcher creates a watcher updating the catalog through scanner.
func NewWatcher(scanner *Scanner, cfg *config.WatchConfig, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Watcher{
		scanner:   scanner,
		debounce:  500 * time.Millisecond,
		recursive: true,
		logger:    logger.With("component", "catalog.watcher"),
		timers:    make(map[string]*time.Timer),
		due:       make(chan string),
		ready:     make(chan struct{}),
	}
	if cfg != nil {
		if cfg.Debounce > 0 {
			w.debounce = cfg.Debounce
		}
		w.recursive = cfg.Recursive
	}
	return w
}

// Ready is closed once Run watches all roots.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches roots until ctx is cancelled. Directories created below a
// root are watched too when the watcher is recursive.
func (w *Watcher) Run(ctx context.Context, roots ...string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, root := range roots {
		if err := w.add(fsw, root); err != nil {
			return err
		}
	}
	close(w.ready)
	w.logger.Info("watching", "roots", roots, "recursive", w.recursive, "debounce", w.debounce)

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, fsw, ev)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case path := <-w.due:
			w.update(ctx, path)
		}
	}
}

// add watches dir and, when recursive, the directories below it.
func (w *Watcher) add(fsw *fsnotify.Watcher, dir string) error {
	if !w.recursive {
		return fsw.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) handle(ctx context.Context, fsw *fsnotify.Watcher, ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) && w.recursive {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := w.add(fsw, ev.Name); err != nil {
				w.logger.Warn("cannot watch new directory", "path", ev.Name, "error", err)
			}
			// Files may have been created before the directory was watched.
			_ = filepath.WalkDir(ev.Name, func(path string, d fs.DirEntry, err error) error {
				if err == nil && !d.IsDir() && files.DetectKind(path) != files.KindUnknown {
					w.schedule(ctx, path)
				}
				return nil
			})
			return
		}
	}
	if ev.Op == fsnotify.Chmod || files.DetectKind(ev.Name) == files.KindUnknown {
		return
	}
	w.schedule(ctx, ev.Name)
}

// schedule reads path once no event arrived for it during the debounce
// interval.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		select {
		case w.due <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) update(ctx context.Context, path string) {
	w.mu.Lock()
	delete(w.timers, path)
	w.mu.Unlock()

	op := OpIndex
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		op = OpRemove
		err = w.scanner.Forget(ctx, path)
	case err == nil:
		var rec *Record
		if rec, err = w.scanner.IndexFile(ctx, path); err == nil {
			w.logger.Debug("file indexed", "path", path, "version", rec.FileVersion, "failed", rec.Failed())
		}
	}
	if err != nil {
		op = OpError
		w.logger.Error("catalog update failed", "path", path, "error", err)
	}
	if w.OnEvent != nil {
		w.OnEvent(op)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}
