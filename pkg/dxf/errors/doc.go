// Package errors provides the error taxonomy of the serialization engine.
//
// Every read or write either succeeds or fails with exactly one of the
// structured errors below. Reference problems are the exception: they are
// collected as values and attached to an otherwise valid result.
//
// # Error Types
//
// ErrorTypeLexical: malformed code/value pairs, bad escape sequences, truncated streams
//
// ErrorTypeStructural: missing required fields, unexpected entity kinds, unterminated sections
//
// ErrorTypeVersion: a file declares a version newer than the engine supports
//
// ErrorTypeReference: a placeholder that never resolved (accumulated, not thrown)
//
// ErrorTypeMigration: a structural migration found data it could not interpret
//
// ErrorTypeIO: failures of the underlying stream
//
// # Basic Usage
//
//	if err != nil {
//	    var fe *errors.FormatError
//	    if stderrors.As(err, &fe) {
//	        fmt.Println("corrupt input at offset", fe.Offset)
//	    }
//	}
package errors
