package descriptor

import (
	"log/slog"

	"github.com/google/uuid"

	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
)

// AssetResolver locates linked resource files on the current machine.
type AssetResolver interface {
	// ResolveLinked returns the absolute path for a path stored in a
	// linked resource, or false when the file cannot be found.
	ResolveLinked(path string) (string, bool)
}

// Warning is a non-fatal problem found while parsing.
type Warning struct {
	Location dxferrors.Location
	Context  string
	Message  string
}

// Warnings collects warnings of one read.
type Warnings struct {
	List []Warning
}

// Add records a warning.
func (w *Warnings) Add(loc dxferrors.Location, context, message string) {
	w.List = append(w.List, Warning{Location: loc, Context: context, Message: message})
}

// ParserInfo is threaded through every parse call of one read. It is never
// shared between concurrent reads.
type ParserInfo struct {
	FileVersion int
	ProjectID   uuid.UUID // calling project, used where files omit project ids
	CurrentFile string
	Registry    *resolve.Registry
	Legacy      *ids.Table
	Logger      *slog.Logger
	Assets      AssetResolver // optional
	Warnings    *Warnings

	// Scope is the legacy numbering scope of the enclosing flow network.
	Scope uint64

	// Networks numbers per-network legacy ids. It is shared by all copies
	// made with WithScope.
	Networks *ids.Scopes

	later *[]func()
}

// NewParserInfo creates a ParserInfo with its collaborators defaulted.
func NewParserInfo(fileVersion int, project uuid.UUID, file string) *ParserInfo {
	return &ParserInfo{
		FileVersion: version.Normalize(fileVersion),
		ProjectID:   project,
		CurrentFile: file,
		Registry:    resolve.NewRegistry(project),
		Legacy:      ids.Default(),
		Logger:      slog.Default().With("component", "dxf.descriptor", "file", file),
		Warnings:    &Warnings{},
		Networks:    ids.NewScopes(),
		later:       new([]func()),
	}
}

// WithScope returns a copy of info for parsing the children of a network.
func (info *ParserInfo) WithScope(scope uint64) *ParserInfo {
	cp := *info
	cp.Scope = scope
	return &cp
}

// EnterNetwork returns the ParserInfo the children of the network with id
// are read with. Networks with current ids need no scope.
func (info *ParserInfo) EnterNetwork(id ids.EntityID) *ParserInfo {
	scope, ok := ids.LegacyScope(id)
	if !ok {
		return info
	}
	if info.Networks != nil {
		info.Networks.Enter(scope)
	}
	return info.WithScope(scope)
}

// Later queues fn until every entity of the read has been parsed. It is
// for references that can only be decoded once later sections are known.
func (info *ParserInfo) Later(fn func()) {
	if info.later == nil {
		info.later = new([]func())
	}
	*info.later = append(*info.later, fn)
}

// RunLater runs the functions queued with Later. Readers call it before
// resolving the registry.
func (info *ParserInfo) RunLater() {
	if info.later == nil {
		return
	}
	queued := *info.later
	*info.later = nil
	for _, fn := range queued {
		fn()
	}
}

// Translate decodes a raw id with the legacy table.
func (info *ParserInfo) Translate(kind ids.Kind, raw ids.Raw) ids.EntityID {
	return info.Legacy.Translate(kind, raw, ids.Context{
		FileVersion: info.FileVersion,
		Project:     info.ProjectID,
		Scope:       info.Scope,
		Scopes:      info.Networks,
	})
}

// Warn records a warning and logs it.
func (info *ParserInfo) Warn(loc dxferrors.Location, context, message string) {
	if info.Warnings != nil {
		info.Warnings.Add(loc, context, message)
	}
	if info.Logger != nil {
		info.Logger.Warn(message, "location", loc.String(), "context", context)
	}
}

// WriterInfo is threaded through every write call. Writers always emit
// version.Current.
type WriterInfo struct {
	ProjectID uuid.UUID
	Logger    *slog.Logger
}

// NewWriterInfo creates a WriterInfo.
func NewWriterInfo(project uuid.UUID) *WriterInfo {
	return &WriterInfo{
		ProjectID: project,
		Logger:    slog.Default().With("component", "dxf.descriptor"),
	}
}
