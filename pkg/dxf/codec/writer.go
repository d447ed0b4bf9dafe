package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Writer appends pairs to a byte stream. The first error is sticky: later
// writes are no-ops and Flush reports it.
type Writer struct {
	bw      *bufio.Writer
	err     error
	written int64
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriterSize(w, 64*1024)}
}

// WritePair writes a field whose value is already escaped.
func (w *Writer) WritePair(code Code, raw string) error {
	if w.err != nil {
		return w.err
	}
	if strings.ContainsAny(raw, "\n\r") {
		w.err = fmt.Errorf("value for code %d contains a line break", code)
		return w.err
	}

	line := strconv.Itoa(int(code))
	n, err := w.bw.WriteString(line + "\n" + raw + "\n")
	w.written += int64(n)
	if err != nil {
		w.err = err
	}
	return w.err
}

// WriteString writes an escaped string field.
func (w *Writer) WriteString(code Code, s string) error {
	return w.WritePair(code, Escape(s))
}

// WriteInt writes a signed integer field.
func (w *Writer) WriteInt(code Code, v int64) error {
	return w.WritePair(code, FormatInt(v))
}

// WriteUint64 writes an unsigned integer field.
func (w *Writer) WriteUint64(code Code, v uint64) error {
	return w.WritePair(code, FormatUint(v))
}

// WriteDouble writes a double field.
func (w *Writer) WriteDouble(code Code, v float64) error {
	return w.WritePair(code, FormatDouble(v))
}

// WriteBool writes a boolean field.
func (w *Writer) WriteBool(code Code, v bool) error {
	return w.WritePair(code, FormatBool(v))
}

// WriteGUID writes a GUID field.
func (w *Writer) WriteGUID(code Code, id uuid.UUID) error {
	return w.WritePair(code, FormatGUID(id))
}

// Written returns the number of bytes handed to the underlying writer so far.
func (w *Writer) Written() int64 {
	return w.written
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.bw.Flush()
	return w.err
}
