package cli

import (
	"context"
	"errors"
	"fmt"

	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfig      = 2
	ExitFormat      = 3
	ExitVersion     = 4
	ExitUnresolved  = 5
	ExitInterrupted = 130
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config error: " + e.Message
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UnresolvedError reports files that were read but left references
// unresolved while strict references are on.
type UnresolvedError struct {
	Files      int
	Unresolved int
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%d unresolved references in %d files", e.Unresolved, e.Files)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ce *ConfigError
	var ue *UnresolvedError
	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.As(err, &ce):
		return ExitConfig
	case errors.As(err, &ue):
		return ExitUnresolved
	}
	switch dxferrors.TypeOf(err) {
	case dxferrors.ErrorTypeLexical, dxferrors.ErrorTypeStructural:
		return ExitFormat
	case dxferrors.ErrorTypeVersion:
		return ExitVersion
	case dxferrors.ErrorTypeReference:
		return ExitUnresolved
	}
	return ExitFailure
}
