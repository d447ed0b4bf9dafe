package descriptor

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
)

// Integer is the set of signed integer types, including enums.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types, including flag sets.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// String creates an escaped string field.
func String[T any](name string, code codec.Code, ptr func(*T) *string) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			v, err := s.C.ExpectString(code)
			*ptr(s.E) = v
			return err
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.String(code, *ptr(e))
		},
	}
}

// Int creates a signed integer field.
func Int[T any, I Integer](name string, code codec.Code, ptr func(*T) *I) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			v, err := s.C.ExpectInt(code)
			*ptr(s.E) = I(v)
			return err
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.Int(code, int64(*ptr(e)))
		},
	}
}

// Enum creates a field for an enumeration stored as its ordinal.
func Enum[T any, E Integer](name string, code codec.Code, ptr func(*T) *E) *Field[T] {
	return Int(name, code, ptr)
}

// Uint creates an unsigned integer field.
func Uint[T any, U Unsigned](name string, code codec.Code, ptr func(*T) *U) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			v, err := s.C.ExpectUint64(code)
			*ptr(s.E) = U(v)
			return err
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.Uint64(code, uint64(*ptr(e)))
		},
	}
}

// Flags creates a field for a flag set stored as its bit pattern.
func Flags[T any, F Unsigned](name string, code codec.Code, ptr func(*T) *F) *Field[T] {
	return Uint(name, code, ptr)
}

// Double creates a floating point field.
func Double[T any](name string, code codec.Code, ptr func(*T) *float64) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			v, err := s.C.ExpectDouble(code)
			*ptr(s.E) = v
			return err
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.Double(code, *ptr(e))
		},
	}
}

// Bool creates a boolean field.
func Bool[T any](name string, code codec.Code, ptr func(*T) *bool) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			v, err := s.C.ExpectBool(code)
			*ptr(s.E) = v
			return err
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.Bool(code, *ptr(e))
		},
	}
}

// GUID creates a GUID field.
func GUID[T any](name string, code codec.Code, ptr func(*T) *uuid.UUID) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			v, err := s.C.ExpectGUID(code)
			*ptr(s.E) = v
			return err
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.GUID(code, *ptr(e))
		},
	}
}

// Time creates a timestamp field stored as RFC 3339 in UTC.
func Time[T any](name string, code codec.Code, ptr func(*T) *time.Time) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			loc := s.C.Location()
			raw, err := s.C.ExpectString(code)
			if err != nil {
				return err
			}
			v, err := time.Parse(time.RFC3339Nano, raw)
			if err != nil {
				return Lexical(s.C, loc, "RFC 3339 timestamp", raw, err)
			}
			*ptr(s.E) = v
			return nil
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.String(code, ptr(e).UTC().Format(time.RFC3339Nano))
		},
	}
}

// Bytes creates a field for binary data stored as hex.
func Bytes[T any](name string, code codec.Code, ptr func(*T) *[]byte) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			loc := s.C.Location()
			raw, err := s.C.ExpectString(code)
			if err != nil {
				return err
			}
			v, err := hex.DecodeString(raw)
			if err != nil {
				return Lexical(s.C, loc, "hex data", raw, err)
			}
			if len(v) == 0 {
				v = nil
			}
			*ptr(s.E) = v
			return nil
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.String(code, hex.EncodeToString(*ptr(e)))
		},
	}
}

// StringList creates a list-valued field of strings in a single pair.
func StringList[T any](name string, code codec.Code, ptr func(*T) *[]string) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			v, err := s.C.ExpectList(code)
			*ptr(s.E) = v
			return err
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.List(code, *ptr(e))
		},
	}
}

// DoubleList creates a list-valued field of doubles in a single pair.
func DoubleList[T any](name string, code codec.Code, ptr func(*T) *[]float64) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			loc := s.C.Location()
			items, err := s.C.ExpectList(code)
			if err != nil {
				return err
			}
			v, err := ParseDoubles(items)
			if err != nil {
				return Lexical(s.C, loc, "list of doubles", codec.JoinEscaped(items), err)
			}
			*ptr(s.E) = v
			return nil
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			return w.List(code, FormatDoubles(*ptr(e)))
		},
	}
}

// ParseDoubles parses every item as a double.
func ParseDoubles(items []string) ([]float64, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]float64, len(items))
	for i, it := range items {
		v, err := codec.ParseDouble(it)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// FormatDoubles formats every value with codec.FormatDouble.
func FormatDoubles(vs []float64) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = codec.FormatDouble(v)
	}
	return out
}

// IntList creates a list-valued field of integers in a single pair.
func IntList[T any, I Integer](name string, code codec.Code, ptr func(*T) *[]I) *Field[T] {
	return &Field[T]{
		name: name,
		code: code,
		read: func(s *State[T]) error {
			loc := s.C.Location()
			items, err := s.C.ExpectList(code)
			if err != nil {
				return err
			}
			var v []I
			for _, it := range items {
				n, err := codec.ParseInt(it)
				if err != nil {
					return Lexical(s.C, loc, "list of integers", codec.JoinEscaped(items), err)
				}
				v = append(v, I(n))
			}
			*ptr(s.E) = v
			return nil
		},
		write: func(w *cursor.Writer, e *T, _ *WriterInfo) error {
			vs := *ptr(e)
			items := make([]string, len(vs))
			for i, v := range vs {
				items[i] = codec.FormatInt(int64(v))
			}
			return w.List(code, items)
		},
	}
}
