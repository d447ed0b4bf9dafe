package files

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/migrate"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// ReadOptions configures a read.
type ReadOptions struct {
	// FileName is used in error locations and logs.
	FileName string

	// ProjectID is the calling project. Ids persisted without a project
	// belong to it.
	ProjectID uuid.UUID

	// Registry is shared by the files of one project so references between
	// them resolve. A fresh registry is created when nil. Registries are
	// not safe for concurrent reads.
	Registry *resolve.Registry

	// Legacy overrides the legacy id table.
	Legacy *ids.Table

	// Assets resolves linked resource paths.
	Assets descriptor.AssetResolver

	// Taxonomies are taxonomies loaded from other files of the project,
	// used by migrations that map names onto taxonomy entries.
	Taxonomies []*model.Taxonomy

	// Migrations replaces the default migration engine.
	Migrations *migrate.Engine

	// Keys supplies the key of encrypted file kinds.
	Keys KeyProvider

	// MaxLineLength overrides codec.DefaultMaxLineLength when positive.
	MaxLineLength int

	// MaxResolveIterations bounds resolution in a registry created for
	// this read. It is ignored when Registry is set.
	MaxResolveIterations int

	Logger   *slog.Logger
	Observer Observer
}

// WriteOptions configures a write. Writers always emit version.Current.
type WriteOptions struct {
	FileName  string
	ProjectID uuid.UUID
	Keys      KeyProvider
	Logger    *slog.Logger
	Observer  Observer
}

// Result is the outcome of a successful read.
type Result[D any] struct {
	Data        *D
	FileVersion int
	Resolved    int
	Unresolved  []*dxferrors.UnresolvedReferenceError
	Foreign     []resolve.ForeignRef
	Warnings    []descriptor.Warning
	Migrations  []migrate.Report

	// Dangling is the part of Unresolved checked within the file alone,
	// such as assets naming a missing resource. Other files read into the
	// same registry cannot resolve them.
	Dangling []*dxferrors.UnresolvedReferenceError
}

// Complete reports whether every local reference resolved.
func (r *Result[D]) Complete() bool {
	return len(r.Unresolved) == 0
}

// Observer receives statistics about every read and write.
type Observer interface {
	ObserveRead(s ReadStats)
	ObserveWrite(s WriteStats)
}

// ReadStats describes one read. Err is set when the read failed.
type ReadStats struct {
	Kind        Kind
	File        string
	FileVersion int
	Duration    time.Duration
	Entities    int
	Resolved    int
	Unresolved  int
	Foreign     int
	Warnings    int
	Migrations  []migrate.Report
	Err         error
}

// WriteStats describes one write.
type WriteStats struct {
	Kind     Kind
	File     string
	Bytes    int64
	Duration time.Duration
	Err      error
}

func (o ReadOptions) logger(kind Kind) *slog.Logger {
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", "dxf.files", "kind", kind.String(), "file", o.FileName)
}

func (o WriteOptions) logger(kind Kind) *slog.Logger {
	l := o.Logger
	if l == nil {
		l = slog.Default()
	}
	return l.With("component", "dxf.files", "kind", kind.String(), "file", o.FileName)
}

func (o ReadOptions) parserInfo(fileVersion int, logger *slog.Logger) *descriptor.ParserInfo {
	info := descriptor.NewParserInfo(fileVersion, o.ProjectID, o.FileName)
	info.Logger = logger
	if o.Registry != nil {
		info.Registry = o.Registry
	} else {
		opts := []resolve.Option{resolve.WithLogger(logger)}
		if o.MaxResolveIterations > 0 {
			opts = append(opts, resolve.WithMaxIterations(o.MaxResolveIterations))
		}
		info.Registry = resolve.NewRegistry(o.ProjectID, opts...)
	}
	if o.Legacy != nil {
		info.Legacy = o.Legacy
	}
	info.Assets = o.Assets
	return info
}

func (o ReadOptions) codec(r io.Reader) *codec.Reader {
	cr := codec.NewReader(r, o.FileName)
	if o.MaxLineLength > 0 {
		cr.WithMaxLineLength(o.MaxLineLength)
	}
	return cr
}

func (o ReadOptions) migrations(logger *slog.Logger) *migrate.Engine {
	if o.Migrations != nil {
		return o.Migrations
	}
	return migrate.Default(migrate.WithLogger(logger))
}
