package ids

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// EntityID identifies an entity within the id space of a project.
type EntityID struct {
	GlobalID uuid.UUID // Owning project, uuid.Nil if not yet known
	LocalID  uint64    // Project-local number, 0 is the absent reference
}

// Empty is the absent reference.
var Empty = EntityID{}

// New creates an EntityID.
func New(project uuid.UUID, local uint64) EntityID {
	return EntityID{GlobalID: project, LocalID: local}
}

// IsEmpty reports whether the id is the absent reference.
func (id EntityID) IsEmpty() bool {
	return id.LocalID == 0
}

// HasProject reports whether the id carries its owning project.
func (id EntityID) HasProject() bool {
	return id.GlobalID != uuid.Nil
}

// WithProject returns the id with project substituted when the persisted
// value omitted its global part.
func (id EntityID) WithProject(project uuid.UUID) EntityID {
	if id.IsEmpty() || id.HasProject() {
		return id
	}
	id.GlobalID = project
	return id
}

// IsForeign reports whether the id belongs to a project other than project.
func (id EntityID) IsForeign(project uuid.UUID) bool {
	return id.HasProject() && project != uuid.Nil && id.GlobalID != project
}

// String formats the id as "<guid>:<local>".
func (id EntityID) String() string {
	return id.GlobalID.String() + ":" + strconv.FormatUint(id.LocalID, 10)
}

// Parse parses the form produced by String. A bare number is accepted and
// yields an id without project.
func Parse(s string) (EntityID, error) {
	guid, local, found := strings.Cut(s, ":")
	if !found {
		local, guid = guid, ""
	}
	n, err := strconv.ParseUint(local, 10, 64)
	if err != nil {
		return Empty, fmt.Errorf("invalid local id %q: %w", local, err)
	}
	id := EntityID{LocalID: n}
	if guid != "" {
		g, err := uuid.Parse(guid)
		if err != nil {
			return Empty, fmt.Errorf("invalid project id %q: %w", guid, err)
		}
		id.GlobalID = g
	}
	return id, nil
}

// Allocator hands out local ids in increasing order. Writers use it to give
// entities created in memory a stable id before they are persisted.
type Allocator struct {
	Project uuid.UUID
	next    uint64
}

// NewAllocator creates an allocator whose first id is start (at least 1).
func NewAllocator(project uuid.UUID, start uint64) *Allocator {
	if start == 0 {
		start = 1
	}
	return &Allocator{Project: project, next: start}
}

// Next returns the next id.
func (a *Allocator) Next() EntityID {
	id := New(a.Project, a.next)
	a.next++
	return id
}

// Observe makes sure ids already in use are never handed out again.
func (a *Allocator) Observe(id EntityID) {
	if id.LocalID >= a.next {
		a.next = id.LocalID + 1
	}
}
