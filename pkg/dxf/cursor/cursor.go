package cursor

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
)

// SkipFunc is notified about every field skipped for forward tolerance.
type SkipFunc func(pair codec.Pair, context string)

type frameKind int

const (
	frameSection frameKind = iota
	frameEntity
	frameList
)

type frame struct {
	kind frameKind
	name string
}

// Cursor is a pull-style reader over a pair stream. It is not safe for
// concurrent use.
type Cursor struct {
	r      *codec.Reader
	stack  []frame
	onSkip SkipFunc
}

// New creates a Cursor over r.
func New(r *codec.Reader) *Cursor {
	return &Cursor{r: r}
}

// OnSkip installs a callback for skipped unknown fields.
func (c *Cursor) OnSkip(fn SkipFunc) {
	c.onSkip = fn
}

// File returns the file name used in error locations.
func (c *Cursor) File() string {
	return c.r.File()
}

// Code returns the code of the current field, or NoCode at the end of the
// stream and after a lexical error (which the next Expect call reports).
func (c *Cursor) Code() codec.Code {
	p, err := c.r.Peek()
	if err != nil {
		return NoCode
	}
	return p.Code
}

// Value returns the raw value of the current field.
func (c *Cursor) Value() string {
	p, err := c.r.Peek()
	if err != nil {
		return ""
	}
	return p.Value
}

// AtEnd reports whether the stream is exhausted.
func (c *Cursor) AtEnd() bool {
	_, err := c.r.Peek()
	return err == io.EOF
}

// Location returns the position of the current field.
func (c *Cursor) Location() dxferrors.Location {
	return c.r.Location()
}

// Context describes the current nesting, outermost first.
func (c *Cursor) Context() string {
	if len(c.stack) == 0 {
		return ""
	}
	parts := make([]string, len(c.stack))
	for i, f := range c.stack {
		switch f.kind {
		case frameSection:
			parts[i] = "section " + f.name
		case frameList:
			parts[i] = "list " + f.name
		default:
			parts[i] = f.name
		}
	}
	return strings.Join(parts, " > ")
}

// Depth returns the current nesting depth.
func (c *Cursor) Depth() int {
	return len(c.stack)
}

// Advance consumes the current field.
func (c *Cursor) Advance() error {
	_, err := c.next()
	return err
}

func (c *Cursor) next() (codec.Pair, error) {
	p, err := c.r.Next()
	if err == io.EOF {
		return codec.Pair{}, c.structural("more fields", "end of stream")
	}
	if err != nil {
		return codec.Pair{}, c.withContext(err)
	}
	return p, nil
}

// Structural builds a structural error at the current location.
func (c *Cursor) Structural(expected, found string) error {
	return c.structural(expected, found)
}

func (c *Cursor) structural(expected, found string) error {
	fe := dxferrors.NewStructuralError(c.Location(), expected, found)
	fe.Context = c.Context()
	return fe
}

func (c *Cursor) lexical(loc dxferrors.Location, expected, found string, cause error) error {
	fe := dxferrors.NewLexicalError(loc, expected, found)
	fe.Context = c.Context()
	fe.Cause = cause
	return fe
}

func (c *Cursor) withContext(err error) error {
	if fe, ok := err.(*dxferrors.FormatError); ok && fe.Context == "" {
		fe.Context = c.Context()
	}
	return err
}

// ExpectRaw consumes a field with the given code and returns its raw value.
func (c *Cursor) ExpectRaw(code codec.Code) (codec.Pair, error) {
	p, err := c.r.Peek()
	if err == io.EOF {
		return codec.Pair{}, c.structural(fmt.Sprintf("code %d", code), "end of stream")
	}
	if err != nil {
		return codec.Pair{}, c.withContext(err)
	}
	if p.Code != code {
		return codec.Pair{}, c.structural(fmt.Sprintf("code %d", code), fmt.Sprintf("code %d (%s)", p.Code, p.Value))
	}
	return c.next()
}

// ExpectString consumes a string field and unescapes it.
func (c *Cursor) ExpectString(code codec.Code) (string, error) {
	p, err := c.ExpectRaw(code)
	if err != nil {
		return "", err
	}
	s, err := codec.Unescape(p.Value)
	if err != nil {
		return "", c.lexical(p.Location, "valid escape sequence", p.Value, err)
	}
	return s, nil
}

// ExpectInt consumes a signed integer field.
func (c *Cursor) ExpectInt(code codec.Code) (int64, error) {
	p, err := c.ExpectRaw(code)
	if err != nil {
		return 0, err
	}
	v, err := codec.ParseInt(p.Value)
	if err != nil {
		return 0, c.lexical(p.Location, "integer", p.Value, err)
	}
	return v, nil
}

// ExpectUint64 consumes an unsigned integer field.
func (c *Cursor) ExpectUint64(code codec.Code) (uint64, error) {
	p, err := c.ExpectRaw(code)
	if err != nil {
		return 0, err
	}
	v, err := codec.ParseUint(p.Value)
	if err != nil {
		return 0, c.lexical(p.Location, "unsigned integer", p.Value, err)
	}
	return v, nil
}

// ExpectDouble consumes a double field.
func (c *Cursor) ExpectDouble(code codec.Code) (float64, error) {
	p, err := c.ExpectRaw(code)
	if err != nil {
		return 0, err
	}
	v, err := codec.ParseDouble(p.Value)
	if err != nil {
		return 0, c.lexical(p.Location, "double", p.Value, err)
	}
	return v, nil
}

// ExpectBool consumes a boolean field.
func (c *Cursor) ExpectBool(code codec.Code) (bool, error) {
	p, err := c.ExpectRaw(code)
	if err != nil {
		return false, err
	}
	v, err := codec.ParseBool(p.Value)
	if err != nil {
		return false, c.lexical(p.Location, "boolean", p.Value, err)
	}
	return v, nil
}

// ExpectGUID consumes a GUID field.
func (c *Cursor) ExpectGUID(code codec.Code) (uuid.UUID, error) {
	p, err := c.ExpectRaw(code)
	if err != nil {
		return uuid.Nil, err
	}
	v, err := codec.ParseGUID(p.Value)
	if err != nil {
		return uuid.Nil, c.lexical(p.Location, "guid", p.Value, err)
	}
	return v, nil
}

// ExpectList consumes a list-valued string field and returns its unescaped items.
func (c *Cursor) ExpectList(code codec.Code) ([]string, error) {
	p, err := c.ExpectRaw(code)
	if err != nil {
		return nil, err
	}
	items, err := codec.SplitUnescaped(p.Value)
	if err != nil {
		return nil, c.lexical(p.Location, "valid escape sequence", p.Value, err)
	}
	return items, nil
}

// IsMarker reports whether the current field is an entity start with the given value.
func (c *Cursor) IsMarker(name string) bool {
	return c.Code() == CodeEntityStart && c.Value() == name
}

// IsEntityStart reports whether the current field starts an entity or marker.
func (c *Cursor) IsEntityStart() bool {
	return c.Code() == CodeEntityStart
}

// ExpectMarker consumes an entity-start field with the given value.
func (c *Cursor) ExpectMarker(name string) error {
	p, err := c.ExpectRaw(CodeEntityStart)
	if err != nil {
		return err
	}
	if p.Value != name {
		return &dxferrors.FormatError{
			Type:     dxferrors.ErrorTypeStructural,
			Location: p.Location,
			Expected: name,
			Found:    p.Value,
			Context:  c.Context(),
		}
	}
	return nil
}

// BeginEntity consumes the start of an entity of the given kind.
func (c *Cursor) BeginEntity(kind string) error {
	if err := c.ExpectMarker(kind); err != nil {
		return err
	}
	c.stack = append(c.stack, frame{kind: frameEntity, name: kind})
	return nil
}

// EndEntity skips fields the current entity does not know (written by a
// newer version) up to the next entity start and leaves the entity.
func (c *Cursor) EndEntity() error {
	for !c.AtEnd() && c.Code() != CodeEntityStart {
		if c.Code() == NoCode {
			// lexical error pending
			return c.Advance()
		}
		p, err := c.next()
		if err != nil {
			return err
		}
		if c.onSkip != nil {
			c.onSkip(p, c.Context())
		}
	}
	return c.pop(frameEntity)
}

// BeginSection consumes a section header with the given name.
func (c *Cursor) BeginSection(name string) error {
	found, err := c.NextSection()
	if err != nil {
		return err
	}
	if found != name {
		return c.structural("section "+name, "section "+found)
	}
	return nil
}

// NextSection consumes the next section header and returns its name. It
// returns an empty name without consuming anything at the EOF marker or at
// the end of the stream.
func (c *Cursor) NextSection() (string, error) {
	if c.AtEnd() || c.IsMarker(MarkerEOF) {
		return "", nil
	}
	if err := c.ExpectMarker(MarkerSection); err != nil {
		return "", err
	}
	name, err := c.ExpectString(CodeSectionName)
	if err != nil {
		return "", err
	}
	c.stack = append(c.stack, frame{kind: frameSection, name: name})
	return name, nil
}

// EndSection consumes the ENDSEC marker of the current section.
func (c *Cursor) EndSection() error {
	if c.AtEnd() {
		return c.structural(MarkerEndSection, "end of stream")
	}
	if err := c.ExpectMarker(MarkerEndSection); err != nil {
		return err
	}
	return c.pop(frameSection)
}

// SkipSection consumes everything up to and including the ENDSEC marker of
// the current section.
func (c *Cursor) SkipSection() error {
	for !c.IsMarker(MarkerEndSection) {
		if c.AtEnd() {
			return c.structural(MarkerEndSection, "end of stream")
		}
		p, err := c.next()
		if err != nil {
			return err
		}
		if c.onSkip != nil {
			c.onSkip(p, c.Context())
		}
	}
	return c.EndSection()
}

// BeginList consumes the count field of a list and returns the count.
func (c *Cursor) BeginList(countCode codec.Code, name string) (int, error) {
	n, err := c.ExpectInt(countCode)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, c.structural("non-negative count for "+name, codec.FormatInt(n))
	}
	c.stack = append(c.stack, frame{kind: frameList, name: name})
	return int(n), nil
}

// EndList consumes the SEQEND marker of the current list.
func (c *Cursor) EndList() error {
	if err := c.ExpectMarker(MarkerEndList); err != nil {
		return err
	}
	return c.pop(frameList)
}

// ExpectEOF consumes the EOF marker. A stream that simply ends is accepted.
func (c *Cursor) ExpectEOF() error {
	if c.AtEnd() {
		return nil
	}
	return c.ExpectMarker(MarkerEOF)
}

func (c *Cursor) pop(kind frameKind) error {
	if len(c.stack) == 0 || c.stack[len(c.stack)-1].kind != kind {
		return c.structural("balanced nesting", c.Context())
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}
