package catalog

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"

	"golang.org/x/crypto/blake2b"
)

// ScanResult summarizes one scan.
type ScanResult struct {
	Indexed  int
	Skipped  int
	Failed   int
	Removed  int64
	Duration time.Duration
}

// Scanner reads SIMULTAN files and records them in a Store.
type Scanner struct {
	store  Store
	opts   files.ReadOptions
	logger *slog.Logger
}

// NewScanner creates a scanner. opts is used for every read; FileName and
// Registry are set per file, so references are resolved within a file.
func NewScanner(store Store, opts files.ReadOptions) *Scanner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		store:  store,
		opts:   opts,
		logger: logger.With("component", "catalog.scanner"),
	}
}

// Scan indexes every file with a known extension below root. Files whose
// size and modification time match their record are skipped. Records of
// files below root that no longer exist are removed.
func (s *Scanner) Scan(ctx context.Context, root string, recursive bool) (ScanResult, error) {
	start := time.Now()
	var res ScanResult
	seen := make(map[string]bool)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if files.DetectKind(path) == files.KindUnknown {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		seen[abs] = true

		rec, indexed, err := s.index(ctx, abs, false)
		switch {
		case err != nil:
			return err
		case !indexed:
			res.Skipped++
		case rec.Failed():
			res.Failed++
		default:
			res.Indexed++
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("scan %s: %w", root, err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return res, err
	}
	res.Removed, err = s.removeMissing(ctx, absRoot, seen)
	if err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	s.logger.Info("scan completed",
		"root", root,
		"indexed", res.Indexed,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"removed", res.Removed,
		"duration", res.Duration,
	)
	return res, nil
}

// IndexFile reads path and records it, even when it is unchanged.
func (s *Scanner) IndexFile(ctx context.Context, path string) (*Record, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	rec, _, err := s.index(ctx, abs, true)
	return rec, err
}

// Forget removes the record of path.
func (s *Scanner) Forget(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	_, err = s.store.Delete(ctx, &Query{Path: abs})
	return err
}

// index returns the record of path and whether the file was read. Read
// failures are recorded, not returned; only store and stat errors are.
func (s *Scanner) index(ctx context.Context, path string, force bool) (*Record, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, err
	}
	if !force {
		old, err := s.store.Get(ctx, path)
		if err != nil {
			return nil, false, err
		}
		if old != nil && old.Size == info.Size() && old.ModTime.Equal(info.ModTime()) {
			return old, false, nil
		}
	}

	kind := files.DetectKind(path)
	rec := &Record{
		Path:    path,
		Kind:    kind.String(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	sum := blake2b.Sum256(content)
	rec.Hash = hex.EncodeToString(sum[:])

	doc, err := s.read(kind, path, bytes.NewReader(content))
	if err != nil {
		rec.Error = err.Error()
		rec.ErrorType = string(dxferrors.TypeOf(err))
		s.logger.Warn("file could not be read", "path", path, "error", err)
	} else {
		rec.FileVersion = doc.FileVersion
		for _, n := range doc.Counts {
			rec.Entities += n
		}
		rec.Resolved = doc.Resolved
		rec.Unresolved = len(doc.Unresolved)
		rec.Foreign = len(doc.Foreign)
		rec.Warnings = len(doc.Warnings)
		rec.Migrations = len(doc.Migrations)
	}

	if err := s.store.Upsert(ctx, rec); err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (s *Scanner) read(kind files.Kind, path string, r io.Reader) (*files.Document, error) {
	opts := s.opts
	opts.FileName = path
	opts.Registry = nil
	return files.ReadDocument(kind, r, opts)
}

func (s *Scanner) removeMissing(ctx context.Context, root string, seen map[string]bool) (int64, error) {
	records, err := s.store.Query(ctx, &Query{PathPrefix: root + string(filepath.Separator)})
	if err != nil {
		return 0, err
	}
	var removed int64
	for _, r := range records {
		if seen[r.Path] {
			continue
		}
		if _, err := os.Stat(r.Path); err == nil {
			continue
		}
		n, err := s.store.Delete(ctx, &Query{Path: r.Path})
		if err != nil {
			return removed, err
		}
		removed += n
	}
	return removed, nil
}
