package entities

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// CodeID holds the own id of every entity that has one.
const CodeID codec.Code = 900

func point2[T any](name string, xCode, yCode codec.Code, ptr func(*T) *model.Point2) *descriptor.Field[T] {
	return descriptor.Custom(name, xCode,
		func(s *descriptor.State[T]) error {
			x, err := s.C.ExpectDouble(xCode)
			if err != nil {
				return err
			}
			y, err := s.C.ExpectDouble(yCode)
			if err != nil {
				return err
			}
			*ptr(s.E) = model.Point2{X: x, Y: y}
			return nil
		},
		func(w *cursor.Writer, e *T, _ *descriptor.WriterInfo) error {
			p := ptr(e)
			w.Double(xCode, p.X)
			return w.Double(yCode, p.Y)
		},
	)
}

func point3[T any](name string, xCode, yCode, zCode codec.Code, ptr func(*T) *model.Point3) *descriptor.Field[T] {
	return descriptor.Custom(name, xCode,
		func(s *descriptor.State[T]) error {
			var p model.Point3
			var err error
			if p.X, err = s.C.ExpectDouble(xCode); err != nil {
				return err
			}
			if p.Y, err = s.C.ExpectDouble(yCode); err != nil {
				return err
			}
			if p.Z, err = s.C.ExpectDouble(zCode); err != nil {
				return err
			}
			*ptr(s.E) = p
			return nil
		},
		func(w *cursor.Writer, e *T, _ *descriptor.WriterInfo) error {
			p := ptr(e)
			w.Double(xCode, p.X)
			w.Double(yCode, p.Y)
			return w.Double(zCode, p.Z)
		},
	)
}

func rangeField[T any](name string, minCode, maxCode codec.Code, ptr func(*T) *model.Range) *descriptor.Field[T] {
	return descriptor.Custom(name, minCode,
		func(s *descriptor.State[T]) error {
			lo, err := s.C.ExpectDouble(minCode)
			if err != nil {
				return err
			}
			hi, err := s.C.ExpectDouble(maxCode)
			if err != nil {
				return err
			}
			*ptr(s.E) = model.Range{Min: lo, Max: hi}
			return nil
		},
		func(w *cursor.Writer, e *T, _ *descriptor.WriterInfo) error {
			r := ptr(e)
			w.Double(minCode, r.Min)
			return w.Double(maxCode, r.Max)
		},
	)
}

// pointList stores points as one flat list of coordinates.
func pointList[T any](name string, code codec.Code, dims int, get func(*T) []float64, set func(*T, []float64)) *descriptor.Field[T] {
	return descriptor.Custom(name, code,
		func(s *descriptor.State[T]) error {
			loc := s.C.Location()
			items, err := s.C.ExpectList(code)
			if err != nil {
				return err
			}
			vs, err := descriptor.ParseDoubles(items)
			if err != nil {
				return lexicalAt(s.C, loc, "list of doubles", err)
			}
			if len(vs)%dims != 0 {
				return s.C.Structural("coordinates in groups of "+codec.FormatInt(int64(dims)), codec.FormatInt(int64(len(vs)))+" values")
			}
			set(s.E, vs)
			return nil
		},
		func(w *cursor.Writer, e *T, _ *descriptor.WriterInfo) error {
			return w.List(code, descriptor.FormatDoubles(get(e)))
		},
	)
}

// valueField stores a typed value as its kind followed by its text.
// Files before typed parameters stored doubles only.
func valueField[T any](name string, kindCode, valueCode codec.Code, ptr func(*T) *model.Value, legacyBefore int) *descriptor.Field[T] {
	return descriptor.Custom(name, kindCode,
		func(s *descriptor.State[T]) error {
			kind, err := s.C.ExpectInt(kindCode)
			if err != nil {
				return err
			}
			loc := s.C.Location()
			raw, err := s.C.ExpectString(valueCode)
			if err != nil {
				return err
			}
			v, err := parseTypedValue(model.ValueKind(kind), raw)
			if err != nil {
				return lexicalAt(s.C, loc, model.ValueKind(kind).String(), err)
			}
			*ptr(s.E) = v
			return nil
		},
		func(w *cursor.Writer, e *T, _ *descriptor.WriterInfo) error {
			v := ptr(e)
			w.Int(kindCode, int64(v.Kind))
			return w.String(valueCode, formatTypedValue(*v))
		},
	).Legacy(legacyBefore, func(s *descriptor.State[T]) error {
		d, err := s.C.ExpectDouble(valueCode)
		if err != nil {
			return err
		}
		*ptr(s.E) = model.DoubleValue(d)
		return nil
	})
}

func lexicalAt(c *cursor.Cursor, loc dxferrors.Location, expected string, cause error) error {
	return descriptor.Lexical(c, loc, expected, cause.Error(), cause)
}
