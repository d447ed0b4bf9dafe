package errors

import (
	"fmt"
	"strings"
)

// ErrorType categorizes the errors raised while reading or writing a file.
type ErrorType string

const (
	ErrorTypeLexical    ErrorType = "lexical"    // Malformed pair, bad escape
	ErrorTypeStructural ErrorType = "structural" // Missing field, unexpected entity
	ErrorTypeVersion    ErrorType = "version"    // Unsupported file version
	ErrorTypeReference  ErrorType = "reference"  // Unresolved placeholder
	ErrorTypeMigration  ErrorType = "migration"  // Ambiguous data during migration
	ErrorTypeIO         ErrorType = "io"         // Stream failure
)

// Location identifies a position in the stream being read.
type Location struct {
	File   string // Path of the file, empty for in-memory streams
	Offset int64  // Byte offset of the offending line
	Line   int    // Line number (1-based)
}

// String returns a human-readable representation of the location.
// Format: "file:line (offset N)"
func (l Location) String() string {
	file := l.File
	if file == "" {
		file = "<stream>"
	}
	return fmt.Sprintf("%s:%d (offset %d)", file, l.Line, l.Offset)
}

// IsValid returns true if the location points into a stream.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// FormatError is raised for lexical and structural problems. It always
// aborts the current read.
type FormatError struct {
	Type     ErrorType // ErrorTypeLexical or ErrorTypeStructural
	Location Location
	Expected string // What the reader expected at this position
	Found    string // What it found instead
	Context  string // Entity/section nesting, outermost first
	Cause    error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] expected %s, found %q", e.Type, e.Expected, e.Found))
	if e.Location.IsValid() {
		sb.WriteString(fmt.Sprintf(" at %s", e.Location.String()))
	}
	if e.Context != "" {
		sb.WriteString(fmt.Sprintf(" in %s", e.Context))
	}
	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return sb.String()
}

// Unwrap returns the underlying cause error.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Offset returns the byte offset of the error.
func (e *FormatError) Offset() int64 {
	return e.Location.Offset
}

// NewLexicalError creates a lexical FormatError.
func NewLexicalError(loc Location, expected, found string) *FormatError {
	return &FormatError{
		Type:     ErrorTypeLexical,
		Location: loc,
		Expected: expected,
		Found:    found,
	}
}

// NewStructuralError creates a structural FormatError.
func NewStructuralError(loc Location, expected, found string) *FormatError {
	return &FormatError{
		Type:     ErrorTypeStructural,
		Location: loc,
		Expected: expected,
		Found:    found,
	}
}

// UnsupportedVersionError is raised when a file declares a version newer
// than the engine understands. Older versions are never an error.
type UnsupportedVersionError struct {
	Declared     int
	MaxSupported int
	File         string
}

// Error implements the error interface.
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("[%s] file %s declares format version %d, newest supported is %d: upgrade required",
		ErrorTypeVersion, displayFile(e.File), e.Declared, e.MaxSupported)
}

// NewUnsupportedVersionError creates a new UnsupportedVersionError.
func NewUnsupportedVersionError(file string, declared, maxSupported int) *UnsupportedVersionError {
	return &UnsupportedVersionError{
		Declared:     declared,
		MaxSupported: maxSupported,
		File:         file,
	}
}

// UnresolvedReferenceError describes a placeholder whose target never
// appeared. It is collected, not returned, unless a caller opts into strict
// reference checking.
type UnresolvedReferenceError struct {
	Holder string // Description of the entity holding the reference
	RawID  string // The persisted id that could not be resolved
	Reason string // Optional detail, e.g. a type mismatch
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	msg := fmt.Sprintf("[%s] %s references %s which was not found", ErrorTypeReference, e.Holder, e.RawID)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// MigrationError records data a structural migration could not safely
// interpret. The migration takes the conservative path and logs it.
type MigrationError struct {
	Migration string
	Subject   string
	Message   string
}

// Error implements the error interface.
func (e *MigrationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s: %s", ErrorTypeMigration, e.Migration, e.Subject, e.Message)
}

// IOError wraps a failure of the underlying stream.
type IOError struct {
	Operation string
	File      string
	Cause     error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("[%s] %s %s: %v", ErrorTypeIO, e.Operation, displayFile(e.File), e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// NewIOError creates a new IOError.
func NewIOError(operation, file string, cause error) *IOError {
	return &IOError{
		Operation: operation,
		File:      file,
		Cause:     cause,
	}
}

func displayFile(file string) string {
	if file == "" {
		return "<stream>"
	}
	return file
}
