package descriptor

import (
	"errors"
	"fmt"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
)

// Codec reads and writes values of type V. *Entity[T] is a Codec[*T] and
// Union[U] is a Codec[U].
type Codec[V any] interface {
	Write(w *cursor.Writer, v V, wi *WriterInfo) error
	Parse(c *cursor.Cursor, info *ParserInfo) (V, error)
}

// Entity describes one persisted entity kind.
type Entity[T any] struct {
	// Kind is the value of the entity start field.
	Kind string

	// IDKind selects the legacy id rules of the entity's own id and of
	// references to it.
	IDKind ids.Kind

	// Fields in wire order.
	Fields []*Field[T]

	// New allocates the entity before fields are read. Defaults to new(T).
	New func(info *ParserInfo) *T

	// Finish runs after all fields were read, before references are queued.
	// Plain errors are reported as structural errors at the entity start.
	Finish func(e *T, info *ParserInfo) error

	// Name describes the entity in reports.
	Name func(e *T) string

	// ChildInfo derives the ParserInfo nested lists are read with.
	ChildInfo func(e *T, info *ParserInfo) *ParserInfo
}

// State is the state of one entity being read. Custom and legacy field
// readers receive it.
type State[T any] struct {
	C    *cursor.Cursor
	E    *T
	Info *ParserInfo

	ent   *Entity[T]
	start dxferrors.Location
	ownID ids.EntityID
	binds []func(e *T, h resolve.Holder)
}

// ChildInfo returns the ParserInfo nested entities are read with.
func (s *State[T]) ChildInfo() *ParserInfo {
	if s.ent.ChildInfo != nil {
		return s.ent.ChildInfo(s.E, s.Info)
	}
	return s.Info
}

// SetOwnID records the id the entity is registered under.
func (s *State[T]) SetOwnID(id ids.EntityID) {
	s.ownID = id
}

// Defer queues fn until the entity is complete. fn receives the holder
// description used for reference reports.
func (s *State[T]) Defer(fn func(resolve.Holder)) {
	s.binds = append(s.binds, func(_ *T, h resolve.Holder) { fn(h) })
}

// DeferOn is Defer for work on the entity itself. fn receives the entity at
// its final address, which differs from s.E for elements of Values lists.
func (s *State[T]) DeferOn(fn func(e *T, h resolve.Holder)) {
	s.binds = append(s.binds, fn)
}

// Write emits e in the current layout.
func (d *Entity[T]) Write(w *cursor.Writer, e *T, wi *WriterInfo) error {
	if e == nil {
		return fmt.Errorf("write %s: nil entity", d.Kind)
	}
	if err := w.BeginEntity(d.Kind); err != nil {
		return err
	}
	for _, f := range d.Fields {
		if !f.activeAt(version.Current) || f.write == nil {
			continue
		}
		if err := f.write(w, e, wi); err != nil {
			return fmt.Errorf("write %s.%s: %w", d.Kind, f.name, err)
		}
	}
	if err := w.EndEntity(); err != nil {
		return err
	}
	return w.Err()
}

// Parse reads one entity in the layout of info.FileVersion.
func (d *Entity[T]) Parse(c *cursor.Cursor, info *ParserInfo) (*T, error) {
	var e *T
	if d.New != nil {
		e = d.New(info)
	} else {
		e = new(T)
	}
	if err := d.ParseInto(c, info, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ParseInto reads one entity into e, which must stay at its address until
// the registry has been resolved.
func (d *Entity[T]) ParseInto(c *cursor.Cursor, info *ParserInfo, e *T) error {
	s, err := d.parseFields(c, info, e)
	if err != nil {
		return err
	}
	return s.commit(e)
}

// parseFields reads one entity into e without registering it. The caller
// commits the returned state once e has reached its final address.
func (d *Entity[T]) parseFields(c *cursor.Cursor, info *ParserInfo, e *T) (*State[T], error) {
	start := c.Location()
	if err := c.BeginEntity(d.Kind); err != nil {
		return nil, err
	}
	s := &State[T]{C: c, E: e, Info: info, ent: d, start: start}

	v := info.FileVersion
	for _, f := range d.Fields {
		var err error
		switch {
		case !f.activeAt(v):
			f.applyDefault(e)
		case f.legacyRead != nil && v < f.legacyBefore:
			err = f.legacyRead(s)
		case f.optional && c.Code() != f.code:
			f.applyDefault(e)
		default:
			err = f.read(s)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := c.EndEntity(); err != nil {
		return nil, err
	}
	if d.Finish != nil {
		if err := d.Finish(e, info); err != nil {
			var fe *dxferrors.FormatError
			if errors.As(err, &fe) {
				return nil, err
			}
			se := dxferrors.NewStructuralError(start, "consistent "+d.Kind, err.Error())
			se.Context = c.Context()
			se.Cause = err
			return nil, se
		}
	}
	return s, nil
}

// commit registers e under its own id and queues its references.
func (s *State[T]) commit(e *T) error {
	s.E = e
	reg := s.Info.Registry
	if reg == nil {
		return nil
	}
	if !s.ownID.IsEmpty() {
		if _, err := reg.Register(s.ownID, e); err != nil {
			if errors.Is(err, resolve.ErrDuplicateID) {
				return duplicateError(s.C, s.start, s.ent.Kind, s.ownID)
			}
			return err
		}
	}
	holder := resolve.HolderOf(s.ent.Kind, s.ownID, "")
	if s.ent.Name != nil {
		holder.Name = s.ent.Name(e)
	}
	for _, b := range s.binds {
		b(e, holder)
	}
	return nil
}

func duplicateError(c *cursor.Cursor, start dxferrors.Location, kind string, id ids.EntityID) error {
	fe := dxferrors.NewStructuralError(start, "unique id for "+kind, id.String())
	fe.Context = c.Context()
	return fe
}
