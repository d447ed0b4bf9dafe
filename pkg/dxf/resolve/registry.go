package resolve

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// ErrDuplicateID is returned when two entities are registered under one id.
var ErrDuplicateID = errors.New("duplicate entity id")

// DefaultMaxIterations bounds Resolve when setters keep enqueuing work.
const DefaultMaxIterations = 10000

// State is the outcome of a placeholder.
type State int

const (
	StatePending State = iota
	StateResolved
	StateUnresolved
	StateForeign
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateUnresolved:
		return "unresolved"
	case StateForeign:
		return "foreign"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Holder describes the entity that holds a reference, for reports.
type Holder struct {
	Kind string
	ID   ids.EntityID
	Name string
}

// HolderOf creates a Holder.
func HolderOf(kind string, id ids.EntityID, name string) Holder {
	return Holder{Kind: kind, ID: id, Name: name}
}

// String formats the holder as `kind "name" (id)`.
func (h Holder) String() string {
	s := h.Kind
	if h.Name != "" {
		s += fmt.Sprintf(" %q", h.Name)
	}
	if !h.ID.IsEmpty() {
		s += " (" + h.ID.String() + ")"
	}
	return s
}

// Setter binds a resolved target to its holder. Returning an error marks
// the placeholder unresolved with the error as reason.
type Setter func(h model.Handle, target any) error

// PendingRef is a captured placeholder.
type PendingRef struct {
	Holder Holder
	ID     ids.EntityID
	State  State
	Reason string
	set    Setter
}

// ForeignRef is a reference into another project.
type ForeignRef struct {
	Holder Holder
	ID     ids.EntityID
}

// Report summarizes the state of all placeholders after Resolve.
type Report struct {
	Resolved   int // resolved by this call
	Iterations int
	Unresolved []*dxferrors.UnresolvedReferenceError
	Foreign    []ForeignRef
}

// Registry is the arena of loaded entities and the queue of placeholders.
// It is not safe for concurrent use.
type Registry struct {
	project       uuid.UUID
	arena         []any
	index         map[ids.EntityID]model.Handle
	pending       []*PendingRef
	unresolved    []*PendingRef
	foreign       []*PendingRef
	mismatched    []*PendingRef
	maxIterations int
	logger        *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithMaxIterations overrides DefaultMaxIterations.
func WithMaxIterations(n int) Option {
	return func(r *Registry) {
		r.maxIterations = n
	}
}

// NewRegistry creates an empty registry for project.
func NewRegistry(project uuid.UUID, opts ...Option) *Registry {
	r := &Registry{
		project:       project,
		arena:         []any{nil}, // handle 0 is the unresolved handle
		index:         make(map[ids.EntityID]model.Handle),
		maxIterations: DefaultMaxIterations,
		logger:        slog.Default().With("component", "resolve.registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Project returns the project whose ids are considered local.
func (r *Registry) Project() uuid.UUID {
	return r.project
}

// Register adds entity to the arena. Entities with an empty id get a handle
// but cannot be referenced.
func (r *Registry) Register(id ids.EntityID, entity any) (model.Handle, error) {
	if !id.IsEmpty() {
		if _, ok := r.index[id]; ok {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
	}
	h := model.Handle(len(r.arena))
	r.arena = append(r.arena, entity)
	if !id.IsEmpty() {
		r.index[id] = h
	}
	return h, nil
}

// Lookup returns the handle registered for id.
func (r *Registry) Lookup(id ids.EntityID) (model.Handle, bool) {
	h, ok := r.index[id]
	return h, ok
}

// Get returns the entity for h, or nil.
func (r *Registry) Get(h model.Handle) any {
	if h <= 0 || int(h) >= len(r.arena) {
		return nil
	}
	return r.arena[h]
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.arena) - 1
}

// RegisterPlaceholder captures a reference from holder to id. Empty ids are
// absent references and are not queued; nil is returned for them.
func (r *Registry) RegisterPlaceholder(holder Holder, id ids.EntityID, set Setter) *PendingRef {
	if id.IsEmpty() {
		return nil
	}
	p := &PendingRef{Holder: holder, ID: id, set: set}
	r.pending = append(r.pending, p)
	return p
}

// Pending returns the number of queued placeholders.
func (r *Registry) Pending() int {
	return len(r.pending)
}

// Resolve drains the placeholder queue to a fixed point. It iterates while
// an iteration resolves at least one placeholder; setters may queue further
// placeholders which are picked up by the next iteration.
func (r *Registry) Resolve() Report {
	queue := make([]*PendingRef, 0, len(r.pending)+len(r.unresolved)+len(r.foreign))
	queue = append(queue, r.pending...)
	queue = append(queue, r.unresolved...)
	queue = append(queue, r.foreign...)
	r.pending, r.unresolved, r.foreign = nil, nil, nil

	var report Report
	for len(queue) > 0 && report.Iterations < r.maxIterations {
		report.Iterations++
		progress := false
		rest := queue[:0:0]
		for _, p := range queue {
			h, ok := r.index[p.ID]
			if !ok {
				rest = append(rest, p)
				continue
			}
			if err := p.set(h, r.arena[h]); err != nil {
				p.State = StateUnresolved
				p.Reason = err.Error()
				r.mismatched = append(r.mismatched, p)
				continue
			}
			p.State = StateResolved
			report.Resolved++
			progress = true
		}
		rest = append(rest, r.pending...)
		r.pending = nil
		queue = rest
		if !progress {
			break
		}
	}
	if len(queue) > 0 && report.Iterations >= r.maxIterations {
		r.logger.Warn("reference resolution stopped at iteration limit",
			"iterations", report.Iterations,
			"remaining", len(queue),
		)
	}

	for _, p := range queue {
		if p.ID.IsForeign(r.project) {
			p.State = StateForeign
			r.foreign = append(r.foreign, p)
			continue
		}
		p.State = StateUnresolved
		r.unresolved = append(r.unresolved, p)
	}

	for _, p := range r.unresolved {
		report.Unresolved = append(report.Unresolved, unresolvedError(p))
	}
	for _, p := range r.mismatched {
		report.Unresolved = append(report.Unresolved, unresolvedError(p))
	}
	for _, p := range r.foreign {
		report.Foreign = append(report.Foreign, ForeignRef{Holder: p.Holder, ID: p.ID})
	}

	r.logger.Debug("references resolved",
		"resolved", report.Resolved,
		"iterations", report.Iterations,
		"unresolved", len(report.Unresolved),
		"foreign", len(report.Foreign),
	)
	return report
}

func unresolvedError(p *PendingRef) *dxferrors.UnresolvedReferenceError {
	return &dxferrors.UnresolvedReferenceError{
		Holder: p.Holder.String(),
		RawID:  p.ID.String(),
		Reason: p.Reason,
	}
}
