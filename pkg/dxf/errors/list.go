package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorList accumulates errors instead of failing on the first one. It is
// used for reference problems and for batch validation of many files.
type ErrorList struct {
	Errors []error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]error, 0),
	}
}

// Add appends an error to the list. Nil errors are ignored.
func (el *ErrorList) Add(err error) {
	if err == nil {
		return
	}
	el.Errors = append(el.Errors, err)
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
// It returns all errors formatted as a single string.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n", el.Count()))
	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("  %d: %v\n", i+1, err))
	}
	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// Unwrap exposes the accumulated errors to errors.Is and errors.As.
func (el *ErrorList) Unwrap() []error {
	return el.Errors
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []error {
	var result []error
	for _, err := range el.Errors {
		if TypeOf(err) == errType {
			result = append(result, err)
		}
	}
	return result
}

// TypeOf classifies an error of this package, looking through wrapping.
// Unknown errors are reported as ErrorTypeIO.
func TypeOf(err error) ErrorType {
	var fe *FormatError
	var ve *UnsupportedVersionError
	var re *UnresolvedReferenceError
	var me *MigrationError
	switch {
	case stderrors.As(err, &fe):
		return fe.Type
	case stderrors.As(err, &ve):
		return ErrorTypeVersion
	case stderrors.As(err, &re):
		return ErrorTypeReference
	case stderrors.As(err, &me):
		return ErrorTypeMigration
	default:
		return ErrorTypeIO
	}
}
