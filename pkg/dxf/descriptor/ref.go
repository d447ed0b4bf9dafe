package descriptor

import (
	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// OwnID creates the field holding an entity's own id. Only the local part
// is stored; the project is the calling project. Older numbering schemes
// are decoded by the legacy table for kind.
func OwnID[T any](name string, code codec.Code, kind ids.Kind, ptr func(*T) *ids.EntityID) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			raw, err := s.C.ExpectInt(code)
			if err != nil {
				return err
			}
			id := s.Info.Translate(kind, ids.Raw{Local: raw})
			*ptr(s.E) = id
			s.SetOwnID(id)
			return nil
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.Uint64(code, ptr(e).LocalID)
		},
	}
}

// ReadID reads a reference id stored as project GUID plus local id. Files
// before version.GlobalIDs store the local id only.
func ReadID(c *cursor.Cursor, info *ParserInfo, guidCode, localCode codec.Code, kind ids.Kind) (ids.EntityID, error) {
	raw, err := ReadRawID(c, info, guidCode, localCode)
	if err != nil {
		return ids.Empty, err
	}
	return info.Translate(kind, raw), nil
}

// ReadRawID reads a reference id like ReadID without decoding it.
func ReadRawID(c *cursor.Cursor, info *ParserInfo, guidCode, localCode codec.Code) (ids.Raw, error) {
	raw := ids.Raw{}
	if info.FileVersion >= version.GlobalIDs {
		g, err := c.ExpectGUID(guidCode)
		if err != nil {
			return raw, err
		}
		raw.Global = g
	}
	local, err := c.ExpectInt(localCode)
	if err != nil {
		return raw, err
	}
	raw.Local = local
	return raw, nil
}

// WriteID writes a reference id as project GUID plus local id. The empty
// reference is written with a nil GUID.
func WriteID(w *cursor.Writer, guidCode, localCode codec.Code, id ids.EntityID) error {
	g := id.GlobalID
	if id.IsEmpty() {
		g = uuid.Nil
	}
	if err := w.GUID(guidCode, g); err != nil {
		return err
	}
	return w.Uint64(localCode, id.LocalID)
}

// Ref creates a reference field. The placeholder is queued in the registry
// once the holding entity is complete.
func Ref[T any, X any](name string, guidCode, localCode codec.Code, kind ids.Kind, ptr func(*T) *model.Ref[X]) *Field[T] {
	return refField(name, guidCode, localCode, kind, ptr, false)
}

// ChildRef is Ref for references to the entity's own children, whose legacy
// ids are decoded with the entity's ChildInfo.
func ChildRef[T any, X any](name string, guidCode, localCode codec.Code, kind ids.Kind, ptr func(*T) *model.Ref[X]) *Field[T] {
	return refField(name, guidCode, localCode, kind, ptr, true)
}

func refField[T any, X any](name string, guidCode, localCode codec.Code, kind ids.Kind, ptr func(*T) *model.Ref[X], child bool) *Field[T] {
	return &Field[T]{
		name: name,
		code: guidCode,
		read: func(s *State[T]) error {
			info := s.Info
			if child {
				info = s.ChildInfo()
			}
			id, err := ReadID(s.C, info, guidCode, localCode, kind)
			if err != nil {
				return err
			}
			*ptr(s.E) = model.RefTo[X](id)
			BindOwn(s, ptr)
			return nil
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return WriteID(w, guidCode, localCode, ptr(e).ID)
		},
	}
}

// BindOwn queues the reference ptr selects in the entity of s itself. Use it
// instead of BindLater for references stored inline in the entity.
func BindOwn[T any, X any](s *State[T], ptr func(*T) *model.Ref[X]) {
	if ptr(s.E).IsEmpty() {
		return
	}
	reg := s.Info.Registry
	s.DeferOn(func(e *T, h resolve.Holder) {
		resolve.Bind(reg, h, ptr(e))
	})
}

// BindLater queues ref for resolution once the entity of s is complete. ref
// must not point into the entity itself; see BindOwn.
func BindLater[T any, X any](s *State[T], ref *model.Ref[X]) {
	if ref.IsEmpty() {
		return
	}
	reg := s.Info.Registry
	s.Defer(func(h resolve.Holder) {
		resolve.Bind(reg, h, ref)
	})
}

// RefList creates a list of references: a count, the ids and SEQEND.
func RefList[T any, X any](name string, countCode, guidCode, localCode codec.Code, kind ids.Kind, ptr func(*T) *[]model.Ref[X]) *Field[T] {
	return &Field[T]{
		name: name,
		code: countCode,
		read: func(s *State[T]) error {
			n, err := s.C.BeginList(countCode, name)
			if err != nil {
				return err
			}
			refs := make([]model.Ref[X], 0, Capacity(n))
			for i := 0; i < n; i++ {
				id, err := ReadID(s.C, s.Info, guidCode, localCode, kind)
				if err != nil {
					return err
				}
				refs = append(refs, model.RefTo[X](id))
			}
			if err := s.C.EndList(); err != nil {
				return err
			}
			if len(refs) == 0 {
				refs = nil
			}
			*ptr(s.E) = refs
			for i := range refs {
				BindLater(s, &refs[i])
			}
			return nil
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			refs := *ptr(e)
			if err := w.BeginList(countCode, name, len(refs)); err != nil {
				return err
			}
			for _, r := range refs {
				if err := WriteID(w, guidCode, localCode, r.ID); err != nil {
					return err
				}
			}
			return w.EndList()
		},
	}
}

// Lexical builds a lexical FormatError for a value that failed to decode.
func Lexical(c *cursor.Cursor, loc dxferrors.Location, expected, found string, cause error) error {
	fe := dxferrors.NewLexicalError(loc, expected, found)
	fe.Context = c.Context()
	fe.Cause = cause
	return fe
}
