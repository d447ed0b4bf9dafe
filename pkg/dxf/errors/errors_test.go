package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestFormatError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *FormatError
		want string
	}{
		{
			name: "lexical with location",
			err:  NewLexicalError(Location{File: "a.codxf", Line: 7, Offset: 42}, "integer field code", "x"),
			want: `[lexical] expected integer field code, found "x" at a.codxf:7 (offset 42)`,
		},
		{
			name: "structural with context",
			err: &FormatError{
				Type:     ErrorTypeStructural,
				Expected: "ENDSEC",
				Found:    "EOF",
				Context:  "ENTITY_SECTION > COMPONENT",
			},
			want: `[structural] expected ENDSEC, found "EOF" in ENTITY_SECTION > COMPONENT`,
		},
		{
			name: "with cause",
			err: &FormatError{
				Type:     ErrorTypeLexical,
				Location: Location{Line: 1},
				Expected: "value line",
				Found:    "",
				Cause:    io.ErrUnexpectedEOF,
			},
			want: `[lexical] expected value line, found "" at <stream>:1 (offset 0): unexpected EOF`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"lexical", NewLexicalError(Location{}, "a", "b"), ErrorTypeLexical},
		{"structural wrapped", fmt.Errorf("read: %w", NewStructuralError(Location{}, "a", "b")), ErrorTypeStructural},
		{"version", NewUnsupportedVersionError("f", 40, 31), ErrorTypeVersion},
		{"reference", &UnresolvedReferenceError{Holder: "h", RawID: "1"}, ErrorTypeReference},
		{"migration", &MigrationError{Migration: "m"}, ErrorTypeMigration},
		{"io", NewIOError("write", "f", io.ErrShortWrite), ErrorTypeIO},
		{"unknown", stderrors.New("boom"), ErrorTypeIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.err); got != tt.want {
				t.Errorf("TypeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorList(t *testing.T) {
	el := NewErrorList()
	if el.ToError() != nil {
		t.Fatal("ToError() of an empty list is not nil")
	}
	el.Add(nil)
	el.Add(NewLexicalError(Location{}, "a", "b"))
	el.Add(&UnresolvedReferenceError{Holder: "h", RawID: "1"})
	el.Add(&UnresolvedReferenceError{Holder: "h", RawID: "2"})

	if el.Count() != 3 {
		t.Errorf("Count() = %d, want 3", el.Count())
	}
	if n := len(el.ByType(ErrorTypeReference)); n != 2 {
		t.Errorf("ByType(reference) = %d errors, want 2", n)
	}
	if !strings.HasPrefix(el.Error(), "Found 3 error(s):") {
		t.Errorf("Error() = %q", el.Error())
	}

	var fe *FormatError
	if !stderrors.As(el.ToError(), &fe) || fe.Type != ErrorTypeLexical {
		t.Error("errors.As does not find the lexical error in the list")
	}
}

func TestUnresolvedReferenceError_Reason(t *testing.T) {
	err := &UnresolvedReferenceError{Holder: "PARAMETER \"A\"", RawID: "x:5", Reason: "kind mismatch"}
	want := `[reference] PARAMETER "A" references x:5 which was not found (kind mismatch)`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
