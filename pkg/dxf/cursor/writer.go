package cursor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
)

// Writer is the write-side mirror of Cursor. It tracks section, entity and
// list nesting so orchestrators cannot emit unbalanced framing.
type Writer struct {
	w     *codec.Writer
	stack []frame
}

// NewWriter creates a Writer on top of a codec writer.
func NewWriter(w *codec.Writer) *Writer {
	return &Writer{w: w}
}

// Codec returns the underlying codec writer.
func (w *Writer) Codec() *codec.Writer {
	return w.w
}

// BeginSection writes a section header.
func (w *Writer) BeginSection(name string) error {
	w.w.WritePair(CodeEntityStart, MarkerSection)
	w.w.WriteString(CodeSectionName, name)
	w.stack = append(w.stack, frame{kind: frameSection, name: name})
	return w.w.Err()
}

// EndSection writes the ENDSEC marker.
func (w *Writer) EndSection() error {
	if err := w.pop(frameSection); err != nil {
		return err
	}
	return w.w.WritePair(CodeEntityStart, MarkerEndSection)
}

// BeginEntity writes the start of an entity. On the wire the entity ends
// implicitly at the next entity start or marker; EndEntity must still be
// called to keep the nesting balanced.
func (w *Writer) BeginEntity(kind string) error {
	w.stack = append(w.stack, frame{kind: frameEntity, name: kind})
	return w.w.WritePair(CodeEntityStart, kind)
}

// EndEntity leaves the current entity.
func (w *Writer) EndEntity() error {
	return w.pop(frameEntity)
}

// BeginList writes the count field of a list of n child entities.
func (w *Writer) BeginList(countCode codec.Code, name string, n int) error {
	w.stack = append(w.stack, frame{kind: frameList, name: name})
	return w.w.WriteInt(countCode, int64(n))
}

// EndList writes the SEQEND marker closing the current list.
func (w *Writer) EndList() error {
	if err := w.pop(frameList); err != nil {
		return err
	}
	return w.w.WritePair(CodeEntityStart, MarkerEndList)
}

// WriteEOF writes the EOF marker and flushes.
func (w *Writer) WriteEOF() error {
	if len(w.stack) != 0 {
		return fmt.Errorf("unbalanced nesting at end of file: %d open frames", len(w.stack))
	}
	w.w.WritePair(CodeEntityStart, MarkerEOF)
	return w.w.Flush()
}

// Raw writes an already escaped value.
func (w *Writer) Raw(code codec.Code, raw string) error {
	return w.w.WritePair(code, raw)
}

// String writes a string field.
func (w *Writer) String(code codec.Code, s string) error {
	return w.w.WriteString(code, s)
}

// Int writes a signed integer field.
func (w *Writer) Int(code codec.Code, v int64) error {
	return w.w.WriteInt(code, v)
}

// Uint64 writes an unsigned integer field.
func (w *Writer) Uint64(code codec.Code, v uint64) error {
	return w.w.WriteUint64(code, v)
}

// Double writes a double field.
func (w *Writer) Double(code codec.Code, v float64) error {
	return w.w.WriteDouble(code, v)
}

// Bool writes a boolean field.
func (w *Writer) Bool(code codec.Code, v bool) error {
	return w.w.WriteBool(code, v)
}

// GUID writes a GUID field.
func (w *Writer) GUID(code codec.Code, id uuid.UUID) error {
	return w.w.WriteGUID(code, id)
}

// List writes a list-valued string field.
func (w *Writer) List(code codec.Code, items []string) error {
	return w.w.WritePair(code, codec.JoinEscaped(items))
}

// Err returns the first write error.
func (w *Writer) Err() error {
	return w.w.Err()
}

// Flush flushes the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) pop(kind frameKind) error {
	if len(w.stack) == 0 || w.stack[len(w.stack)-1].kind != kind {
		return fmt.Errorf("unbalanced nesting: no open frame to close")
	}
	w.stack = w.stack[:len(w.stack)-1]
	return nil
}
