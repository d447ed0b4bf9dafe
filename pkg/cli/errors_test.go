package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "catalog.path",
		Message: "missing required field",
	}

	expected := "config error in catalog.path: missing required field"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	noField := NewConfigError("", "failed to load config")
	if noField.Error() != "config error: failed to load config" {
		t.Errorf("Error() = %q", noField.Error())
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("convert", underlyingErr)

	expected := "command convert failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestExitCode(t *testing.T) {
	loc := dxferrors.Location{File: "a.codxf", Line: 3}
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"config", NewConfigError("x", "y"), ExitConfig},
		{"wrapped config", fmt.Errorf("load: %w", NewConfigError("x", "y")), ExitConfig},
		{"structural", NewCommandError("inspect", dxferrors.NewStructuralError(loc, "ENDSEC", "EOF")), ExitFormat},
		{"version", &dxferrors.UnsupportedVersionError{File: "a.codxf", Declared: 99, MaxSupported: 31}, ExitVersion},
		{"unresolved", &UnresolvedError{Files: 1, Unresolved: 2}, ExitUnresolved},
		{"cancelled", fmt.Errorf("scan: %w", context.Canceled), ExitInterrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestUnresolvedError(t *testing.T) {
	err := &UnresolvedError{Files: 2, Unresolved: 7}
	if err.Error() != "7 unresolved references in 2 files" {
		t.Errorf("Error() = %q", err.Error())
	}
}
