package codec

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
)

// DefaultMaxLineLength bounds the memory a single line may occupy.
const DefaultMaxLineLength = 16 * 1024 * 1024

// Code is the integer selecting the role of a field.
type Code int

// Pair is one field of the stream. Value is the raw line, still escaped.
type Pair struct {
	Code     Code
	Value    string
	Location dxferrors.Location
}

// Reader reads pairs from a byte stream with one pair of lookahead.
type Reader struct {
	br            *bufio.Reader
	file          string
	offset        int64
	line          int
	maxLineLength int

	peeked  *Pair
	peekErr error
}

// NewReader creates a Reader. file is only used in error locations.
func NewReader(r io.Reader, file string) *Reader {
	return &Reader{
		br:            bufio.NewReaderSize(r, 64*1024),
		file:          file,
		maxLineLength: DefaultMaxLineLength,
	}
}

// WithMaxLineLength sets the maximum length of a single line.
func (r *Reader) WithMaxLineLength(n int) *Reader {
	r.maxLineLength = n
	return r
}

// File returns the file name used in error locations.
func (r *Reader) File() string {
	return r.file
}

// Location returns the position of the next unread line.
func (r *Reader) Location() dxferrors.Location {
	if r.peeked != nil {
		return r.peeked.Location
	}
	return dxferrors.Location{File: r.file, Offset: r.offset, Line: r.line + 1}
}

// Peek returns the next pair without consuming it. At the end of the stream
// it returns io.EOF.
func (r *Reader) Peek() (Pair, error) {
	if r.peeked == nil && r.peekErr == nil {
		p, err := r.readPair()
		if err != nil {
			r.peekErr = err
		} else {
			r.peeked = &p
		}
	}
	if r.peekErr != nil {
		return Pair{}, r.peekErr
	}
	return *r.peeked, nil
}

// Next consumes and returns the next pair. At the end of the stream it
// returns io.EOF.
func (r *Reader) Next() (Pair, error) {
	p, err := r.Peek()
	if err != nil {
		return Pair{}, err
	}
	r.peeked = nil
	return p, nil
}

func (r *Reader) readPair() (Pair, error) {
	codeLine, loc, err := r.readLine()
	if err != nil {
		return Pair{}, err
	}

	code, convErr := strconv.Atoi(strings.TrimSpace(codeLine))
	if convErr != nil {
		return Pair{}, dxferrors.NewLexicalError(loc, "integer field code", codeLine)
	}

	value, _, err := r.readLine()
	if err == io.EOF {
		return Pair{}, dxferrors.NewLexicalError(r.Location(), "value line for code "+strconv.Itoa(code), "end of stream")
	}
	if err != nil {
		return Pair{}, err
	}

	return Pair{Code: Code(code), Value: value, Location: loc}, nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is accepted.
func (r *Reader) readLine() (string, dxferrors.Location, error) {
	loc := dxferrors.Location{File: r.file, Offset: r.offset, Line: r.line + 1}

	var buf []byte
	for {
		chunk, err := r.br.ReadSlice('\n')
		if len(buf)+len(chunk) > r.maxLineLength {
			return "", loc, dxferrors.NewLexicalError(loc,
				"line shorter than "+strconv.Itoa(r.maxLineLength)+" bytes", "oversized line")
		}
		buf = append(buf, chunk...)

		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == io.EOF {
			if len(buf) == 0 {
				return "", loc, io.EOF
			}
			break
		}
		return "", loc, dxferrors.NewIOError("read", r.file, err)
	}

	r.offset += int64(len(buf))
	r.line++

	buf = bytes.TrimSuffix(buf, []byte{'\n'})
	buf = bytes.TrimSuffix(buf, []byte{'\r'})
	return string(buf), loc, nil
}
