package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/catalog"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/cli"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/security/keys"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/logging"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/metrics"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/tracing"
)

// app holds what every command needs: configuration, telemetry and the
// inputs shared by all reads.
type app struct {
	cfg     *config.Config
	log     *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	keys    keys.Provider
	project uuid.UUID

	assets     descriptor.AssetResolver
	taxonomies []*model.Taxonomy
}

// newApp loads the configuration, unless one was set already, and starts
// logging, metrics and tracing. The caller must call close.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg := config.GetConfig()
	if cfg == nil {
		if err := config.Initialize(cfgFile); err != nil {
			return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
		}
		cfg = config.GetConfig()
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	log, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, cmd.ErrOrStderr()))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(log.Slog())

	tracer, err := tracing.New(&cfg.Telemetry.Tracing, tracing.WithVersion(Version))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.tracing", err.Error())
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry()),
		tracer:  tracer,
		keys:    keys.Lazy(cfg.Keys, log.Slog()),
	}
	if cfg.Project.ID != "" {
		if a.project, err = uuid.Parse(cfg.Project.ID); err != nil {
			return nil, cli.NewConfigError("project.id", err.Error())
		}
	}
	if err := a.loadContext(); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// loadContext reads the links and taxonomy files given on the command line.
func (a *app) loadContext() error {
	var links *files.LinkData
	if linksFile != "" {
		f, err := os.Open(linksFile)
		if err != nil {
			return err
		}
		defer f.Close()
		res, err := files.Links.Read(f, a.readOptions(linksFile, nil, nil))
		if err != nil {
			return fmt.Errorf("links file: %w", err)
		}
		links = res.Data
	}
	if links != nil || len(a.cfg.Project.LinkDirs) > 0 {
		a.assets = files.NewLinkResolver(links, a.cfg.Project.Machine, a.cfg.Project.LinkDirs...)
	}

	if taxonomiesFile != "" {
		f, err := os.Open(taxonomiesFile)
		if err != nil {
			return err
		}
		defer f.Close()
		res, err := files.Taxonomies.Read(f, a.readOptions(taxonomiesFile, nil, nil))
		if err != nil {
			return fmt.Errorf("taxonomy file: %w", err)
		}
		a.taxonomies = res.Data.Taxonomies
	}
	return nil
}

func (a *app) close() {
	if err := a.tracer.Shutdown(context.Background()); err != nil {
		a.log.Warn("tracer shutdown failed", "error", err)
	}
	if err := a.keys.Close(); err != nil {
		a.log.Warn("key provider close failed", "error", err)
	}
	_ = a.log.Shutdown()
}

// readOptions returns the options of one read. span receives the read
// statistics as attributes; registry is shared when not nil.
func (a *app) readOptions(path string, span trace.Span, registry *resolve.Registry) files.ReadOptions {
	return files.ReadOptions{
		FileName:             path,
		ProjectID:            a.project,
		Registry:             registry,
		Assets:               a.assets,
		Taxonomies:           a.taxonomies,
		Keys:                 a.keys,
		MaxLineLength:        a.cfg.Reader.MaxLineLength,
		MaxResolveIterations: a.cfg.Reader.MaxResolveIterations,
		Logger:               a.log.Slog(),
		Observer:             tracing.SpanObserver{Span: span, Next: a.metrics},
	}
}

func (a *app) writeOptions(path string, span trace.Span) files.WriteOptions {
	return files.WriteOptions{
		FileName:  path,
		ProjectID: a.project,
		Keys:      a.keys,
		Logger:    a.log.Slog(),
		Observer:  tracing.SpanObserver{Span: span, Next: a.metrics},
	}
}

// readFile reads path inside a span. kind is detected from the extension
// when unknown.
func (a *app) readFile(ctx context.Context, path string, kind files.Kind, registry *resolve.Registry) (*files.Document, error) {
	if kind == files.KindUnknown {
		kind = files.DetectKind(path)
	}
	if kind == files.KindUnknown {
		return nil, cli.NewConfigError("kind", fmt.Sprintf("cannot detect the kind of %s, use --kind", filepath.Base(path)))
	}

	ctx = logging.WithFile(logging.WithKind(ctx, kind.String()), path)
	ctx, span := a.tracer.Start(ctx, "simdxf.read", trace.WithAttributes(tracing.FileAttributes(path, kind)...))
	defer span.End()

	f, err := os.Open(path)
	if err != nil {
		tracing.SetStatus(span, err)
		return nil, err
	}
	defer f.Close()

	doc, err := files.ReadDocument(kind, f, a.readOptions(path, span, registry))
	tracing.SetStatus(span, err)
	if err != nil {
		a.log.DebugContext(ctx, "read failed", "error", err)
	}
	return doc, err
}

// writeFile writes doc to path through a temporary file in the same
// directory, so path is replaced atomically.
func (a *app) writeFile(ctx context.Context, path string, doc *files.Document) (err error) {
	ctx = logging.WithFile(logging.WithKind(ctx, doc.Kind.String()), path)
	_, span := a.tracer.Start(ctx, "simdxf.write", trace.WithAttributes(tracing.FileAttributes(path, doc.Kind)...))
	defer func() {
		tracing.SetStatus(span, err)
		span.End()
	}()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = files.WriteDocument(tmp, doc, a.writeOptions(path, span)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// openCatalog opens the configured catalog. Scan statistics and pruning
// are reported to the metrics collector.
func (a *app) openCatalog() (*catalog.SQLiteStore, error) {
	if !a.cfg.Catalog.Enabled {
		return nil, cli.NewConfigError("catalog.enabled", "the catalog is disabled")
	}
	if dir := filepath.Dir(a.cfg.Catalog.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return catalog.NewSQLiteStore(&catalog.SQLiteConfig{
		Driver:      a.cfg.Catalog.Driver,
		Path:        a.cfg.Catalog.Path,
		WALMode:     true,
		BusyTimeout: a.cfg.Catalog.BusyTimeout,
		Logger:      a.log.Slog(),
	})
}

func (a *app) newScanner(store catalog.Store) *catalog.Scanner {
	opts := a.readOptions("", nil, nil)
	return catalog.NewScanner(store, opts)
}

func (a *app) newPruner(store catalog.Store) *catalog.Pruner {
	p := catalog.NewPruner(store, &a.cfg.Catalog.Retention, a.log.Slog())
	p.OnPrune = a.metrics.RecordPruned
	return p
}

// strict reports whether unresolved references fail the command.
func (a *app) strict(flag *bool) bool {
	if flag != nil {
		return *flag
	}
	return a.cfg.Project.StrictReferences
}

// parseKind parses a --kind flag value. An empty value means detection.
func parseKind(s string) (files.Kind, error) {
	if s == "" {
		return files.KindUnknown, nil
	}
	k, err := files.ParseKind(s)
	if err != nil {
		return files.KindUnknown, cli.NewConfigError("kind", err.Error())
	}
	return k, nil
}

var errNoFiles = errors.New("no files given")
