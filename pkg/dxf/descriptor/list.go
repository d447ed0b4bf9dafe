package descriptor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
)

// List creates a field of nested child entities: a count, the children and
// SEQEND. Children are parsed recursively with the entity's ChildInfo.
func List[T any, V any](name string, countCode codec.Code, child Codec[V], ptr func(*T) *[]V) *Field[T] {
	return &Field[T]{
		name: name,
		code: countCode,
		read: func(s *State[T]) error {
			items, err := ReadList(s.C, s.ChildInfo(), name, countCode, child)
			*ptr(s.E) = items
			return err
		},
		write: func(w *cursor.Writer, e *T, wi *WriterInfo) error {
			return WriteList(w, wi, name, countCode, child, *ptr(e))
		},
	}
}

// maxPrealloc bounds the capacity reserved for a count read from a file.
// Longer lists grow as their elements are read.
const maxPrealloc = 1024

// Capacity returns the capacity to reserve for a list of n elements.
func Capacity(n int) int {
	return min(n, maxPrealloc)
}

// ReadList reads a count, that many values and SEQEND.
func ReadList[V any](c *cursor.Cursor, info *ParserInfo, name string, countCode codec.Code, child Codec[V]) ([]V, error) {
	n, err := c.BeginList(countCode, name)
	if err != nil {
		return nil, err
	}
	var items []V
	if n > 0 {
		items = make([]V, 0, Capacity(n))
	}
	for i := 0; i < n; i++ {
		v, err := child.Parse(c, info)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, c.EndList()
}

// WriteList writes a count, the values and SEQEND.
func WriteList[V any](w *cursor.Writer, wi *WriterInfo, name string, countCode codec.Code, child Codec[V], items []V) error {
	if err := w.BeginList(countCode, name, len(items)); err != nil {
		return err
	}
	for _, v := range items {
		if err := child.Write(w, v, wi); err != nil {
			return err
		}
	}
	return w.EndList()
}

// Single creates a field holding an optional nested entity, encoded as a
// list of zero or one children. A nil value is written as an empty list.
func Single[T any, V any](name string, countCode codec.Code, child Codec[V], ptr func(*T) *V) *Field[T] {
	return &Field[T]{
		name: name,
		code: countCode,
		read: func(s *State[T]) error {
			items, err := ReadList(s.C, s.ChildInfo(), name, countCode, child)
			if err != nil {
				return err
			}
			switch len(items) {
			case 0:
			case 1:
				*ptr(s.E) = items[0]
			default:
				return s.C.Structural("at most one "+name, fmt.Sprintf("%d entries", len(items)))
			}
			return nil
		},
		write: func(w *cursor.Writer, e *T, wi *WriterInfo) error {
			v := *ptr(e)
			if isNil(v) {
				return WriteList[V](w, wi, name, countCode, child, nil)
			}
			return WriteList(w, wi, name, countCode, child, []V{v})
		},
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

type variant[U any] struct {
	kind  string
	parse func(c *cursor.Cursor, info *ParserInfo) (U, error)
	write func(w *cursor.Writer, v U, wi *WriterInfo) (bool, error)
}

// Union is a Codec for a closed union whose variants are told apart by
// their entity kind.
type Union[U any] struct {
	Name     string
	variants []variant[U]
}

// NewUnion creates an empty union.
func NewUnion[U any](name string) *Union[U] {
	return &Union[U]{Name: name}
}

// AddVariant registers e as the variant for values of type *T. *T must
// implement U.
func AddVariant[U any, T any](u *Union[U], e *Entity[T]) *Union[U] {
	if _, ok := any((*T)(nil)).(U); !ok {
		panic(fmt.Sprintf("descriptor: *%s does not implement %s", reflect.TypeOf((*T)(nil)).Elem(), reflect.TypeOf((*U)(nil)).Elem()))
	}
	u.variants = append(u.variants, variant[U]{
		kind: e.Kind,
		parse: func(c *cursor.Cursor, info *ParserInfo) (U, error) {
			t, err := e.Parse(c, info)
			if err != nil {
				var zero U
				return zero, err
			}
			return any(t).(U), nil
		},
		write: func(w *cursor.Writer, v U, wi *WriterInfo) (bool, error) {
			t, ok := any(v).(*T)
			if !ok {
				return false, nil
			}
			return true, e.Write(w, t, wi)
		},
	})
	return u
}

// Kinds returns the entity kinds of all variants.
func (u *Union[U]) Kinds() []string {
	kinds := make([]string, len(u.variants))
	for i, v := range u.variants {
		kinds[i] = v.kind
	}
	return kinds
}

// Write emits v with the descriptor of its variant.
func (u *Union[U]) Write(w *cursor.Writer, v U, wi *WriterInfo) error {
	for _, vr := range u.variants {
		ok, err := vr.write(w, v, wi)
		if ok {
			return err
		}
	}
	return fmt.Errorf("write %s: unknown variant %T", u.Name, v)
}

// Parse reads the variant named by the current entity start.
func (u *Union[U]) Parse(c *cursor.Cursor, info *ParserInfo) (U, error) {
	var zero U
	if c.IsEntityStart() {
		kind := c.Value()
		for _, vr := range u.variants {
			if vr.kind == kind {
				return vr.parse(c, info)
			}
		}
	}
	found := c.Value()
	if !c.IsEntityStart() {
		found = fmt.Sprintf("code %d", c.Code())
	}
	return zero, c.Structural(u.Name+" ("+strings.Join(u.Kinds(), ", ")+")", found)
}

// Values creates a field of nested entities stored by value. Elements are
// registered and their references queued once the list is complete, so
// they bind to the final slice.
func Values[T any, V any](name string, countCode codec.Code, child *Entity[V], ptr func(*T) *[]V) *Field[T] {
	return &Field[T]{
		name: name,
		code: countCode,
		read: func(s *State[T]) error {
			n, err := s.C.BeginList(countCode, name)
			if err != nil {
				return err
			}
			var items []V
			var pending []*State[V]
			if n > 0 {
				items = make([]V, 0, Capacity(n))
				pending = make([]*State[V], 0, Capacity(n))
			}
			info := s.ChildInfo()
			for i := 0; i < n; i++ {
				var zero V
				items = append(items, zero)
				ps, err := child.parseFields(s.C, info, &items[i])
				if err != nil {
					return err
				}
				pending = append(pending, ps)
			}
			if err := s.C.EndList(); err != nil {
				return err
			}
			for i, ps := range pending {
				if err := ps.commit(&items[i]); err != nil {
					return err
				}
			}
			*ptr(s.E) = items
			return nil
		},
		write: func(w *cursor.Writer, e *T, wi *WriterInfo) error {
			items := *ptr(e)
			if err := w.BeginList(countCode, name, len(items)); err != nil {
				return err
			}
			for i := range items {
				if err := child.Write(w, &items[i], wi); err != nil {
					return err
				}
			}
			return w.EndList()
		},
	}
}
