package descriptor

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
)

// ReadFunc reads a field into s.E.
type ReadFunc[T any] func(s *State[T]) error

// WriteFunc writes a field of e.
type WriteFunc[T any] func(w *cursor.Writer, e *T, wi *WriterInfo) error

// Field is one row of an entity's field table.
type Field[T any] struct {
	name     string
	code     codec.Code
	since    int
	until    int
	optional bool

	read  ReadFunc[T]
	write WriteFunc[T]
	def   func(e *T)

	legacyBefore int
	legacyRead   ReadFunc[T]
}

// Name returns the field name.
func (f *Field[T]) Name() string { return f.name }

// Code returns the code of the field's first pair.
func (f *Field[T]) Code() codec.Code { return f.code }

// Since marks the field as introduced at version v. Older files get the
// default.
func (f *Field[T]) Since(v int) *Field[T] {
	f.since = v
	return f
}

// Until marks the field as removed at version v. It is read from older
// files only and never written.
func (f *Field[T]) Until(v int) *Field[T] {
	f.until = v
	return f
}

// Optional allows the field to be absent even where it is active. Its
// presence is decided by the current code, without consuming anything.
func (f *Field[T]) Optional() *Field[T] {
	f.optional = true
	return f
}

// Default sets what an absent field leaves in the entity. Without it the
// zero value allocated by New stays.
func (f *Field[T]) Default(fn func(e *T)) *Field[T] {
	f.def = fn
	return f
}

// Legacy reads files older than version before with read instead of the
// current decoding.
func (f *Field[T]) Legacy(before int, read ReadFunc[T]) *Field[T] {
	f.legacyBefore = before
	f.legacyRead = read
	return f
}

// ActiveAt reports whether the field is present in files of version v.
func (f *Field[T]) ActiveAt(v int) bool {
	return f.activeAt(v)
}

func (f *Field[T]) activeAt(v int) bool {
	return v >= f.since && (f.until == 0 || v < f.until)
}

func (f *Field[T]) applyDefault(e *T) {
	if f.def != nil {
		f.def(e)
	}
}

// DefaultTo returns a default function assigning v through ptr.
func DefaultTo[T any, V any](ptr func(*T) *V, v V) func(*T) {
	return func(e *T) {
		*ptr(e) = v
	}
}

// Custom creates a field with hand written encoding, for layouts that are
// not a sequence of single pairs.
func Custom[T any](name string, code codec.Code, read ReadFunc[T], write WriteFunc[T]) *Field[T] {
	return &Field[T]{name: name, code: code, read: read, write: write}
}
