package migrate

import (
	"log/slog"

	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// Graph is the part of a loaded project migrations work on.
type Graph struct {
	Components []*model.Component
	Taxonomies []*model.Taxonomy

	// Registry, when set, supplies handles for references created by a
	// migration.
	Registry *resolve.Registry

	// References are ids referenced from outside the component tree, for
	// example by value mappings, user lists or assets.
	References []ids.EntityID
}

// Report summarizes what one migration changed.
type Report struct {
	Migration string
	Removed   int
	Demoted   int
	Mapped    int
	Renamed   int
	Problems  []*dxferrors.MigrationError
}

// Changed reports whether the migration modified the graph.
func (r Report) Changed() bool {
	return r.Removed+r.Demoted+r.Mapped+r.Renamed > 0
}

// Migration is one graph restructuring, applied to files older than Before.
type Migration struct {
	Name   string
	Before int
	Run    func(g *Graph, r *Report, logger *slog.Logger)
}

// Engine applies the registered migrations in registration order.
type Engine struct {
	migrations []Migration
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger migration problems are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine with no migrations registered.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.Default().With("component", "dxf.migrate"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Default returns an engine with every built-in migration.
func Default(opts ...Option) *Engine {
	e := NewEngine(opts...)
	e.Register(RemoveAutoGenerated())
	e.Register(SlotNamesToTaxonomy())
	e.Register(RenameReservedParameters())
	return e
}

// Register adds a migration.
func (e *Engine) Register(m Migration) {
	e.migrations = append(e.migrations, m)
}

// Names returns the names of the registered migrations.
func (e *Engine) Names() []string {
	names := make([]string, len(e.migrations))
	for i, m := range e.migrations {
		names[i] = m.Name
	}
	return names
}

// Apply runs every migration whose gate matches fileVersion and returns
// one report per migration run.
func (e *Engine) Apply(g *Graph, fileVersion int) []Report {
	var reports []Report
	for _, m := range e.migrations {
		if fileVersion >= m.Before {
			continue
		}
		logger := e.logger.With("migration", m.Name, "file_version", fileVersion)
		r := Report{Migration: m.Name}
		m.Run(g, &r, logger)
		for _, p := range r.Problems {
			logger.Warn("migration problem", "subject", p.Subject, "message", p.Message)
		}
		if r.Changed() {
			logger.Info("migration applied",
				"removed", r.Removed,
				"demoted", r.Demoted,
				"mapped", r.Mapped,
				"renamed", r.Renamed,
			)
		}
		reports = append(reports, r)
	}
	return reports
}

func (r *Report) problem(subject, message string) {
	r.Problems = append(r.Problems, &dxferrors.MigrationError{
		Migration: r.Migration,
		Subject:   subject,
		Message:   message,
	})
}
