package model

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"

// Handle indexes an entity in a registry arena. Zero means unresolved.
type Handle int

// Ref references another entity of type T by id. T is the pointer or
// interface type the target is stored as.
type Ref[T any] struct {
	ID     ids.EntityID
	Handle Handle
}

// RefTo creates an unresolved reference to id.
func RefTo[T any](id ids.EntityID) Ref[T] {
	return Ref[T]{ID: id}
}

// IsEmpty reports whether the reference points nowhere.
func (r Ref[T]) IsEmpty() bool {
	return r.ID.IsEmpty()
}

// IsResolved reports whether a read has bound the reference to a live entity.
func (r Ref[T]) IsResolved() bool {
	return r.Handle != 0
}

// Point2 is a position in a plane.
type Point2 struct {
	X, Y float64
}

// Point3 is a position in space.
type Point3 struct {
	X, Y, Z float64
}
