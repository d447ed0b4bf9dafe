package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"
)

func TestNewRedactor(t *testing.T) {
	tests := []struct {
		name         string
		custom       []config.RedactPattern
		wantPatterns int
	}{
		{name: "default patterns only", wantPatterns: len(defaultPatterns)},
		{
			name:         "with custom pattern",
			custom:       []config.RedactPattern{{Name: "project", Pattern: `PRJ-\d+`, Replacement: "PRJ-***"}},
			wantPatterns: len(defaultPatterns) + 1,
		},
		{
			name:         "invalid custom pattern is skipped",
			custom:       []config.RedactPattern{{Name: "invalid", Pattern: "[unclosed"}},
			wantPatterns: len(defaultPatterns),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRedactor(tt.custom)
			if len(r.patterns) != tt.wantPatterns {
				t.Errorf("expected %d patterns, got %d", tt.wantPatterns, len(r.patterns))
			}
		})
	}
}

func TestRedactor_RedactString(t *testing.T) {
	r := NewRedactor([]config.RedactPattern{{Name: "project", Pattern: `PRJ-\d+`, Replacement: "PRJ-***"}})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"password", "login password=hunter2 failed", "login password: *** failed"},
		{"key material", "key=c2VjcmV0LWtleS1tYXRlcmlhbA==", "key: ***"},
		{"bearer token", "Authorization: Bearer abc.def", "Authorization: Bearer ***"},
		{"email", "owner jane.doe@example.com", "owner j***@example.com"},
		{"unix home", "/home/jdoe/projects/a.codxf", "/home/***/projects/a.codxf"},
		{"windows home", `C:\Users\jdoe\a.codxf`, `C:\Users\***\a.codxf`},
		{"custom", "opened PRJ-1234", "opened PRJ-***"},
		{"nothing sensitive", "read 12 sections", "read 12 sections"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RedactString(tt.input); got != tt.want {
				t.Errorf("RedactString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedactor_RedactAttr(t *testing.T) {
	r := NewRedactor(nil)

	tests := []struct {
		name string
		attr slog.Attr
		want string
	}{
		{"secret key", slog.String("password", "hunter2"), "***"},
		{"secret key with any value", slog.Int("user_key_len", 32), "***"},
		{"identity", slog.String("user", "admin"), "a***"},
		{"plain string", slog.String("file", "/home/jdoe/a.codxf"), "/home/***/a.codxf"},
		{"error", slog.Any("error", errors.New("open /Users/jdoe/x: denied")), "open /Users/***/x: denied"},
		{"number", slog.Int("entities", 3), "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.RedactAttr(tt.attr)
			if got.Value.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.Value.String())
			}
			if got.Key != tt.attr.Key {
				t.Errorf("expected key %q, got %q", tt.attr.Key, got.Key)
			}
		})
	}
}

func TestRedactor_RedactAttr_Group(t *testing.T) {
	r := NewRedactor(nil)
	got := r.RedactAttr(slog.Group("login", slog.String("user", "bob"), slog.String("password", "x")))

	attrs := got.Value.Group()
	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Value.String() != "b***" || attrs[1].Value.String() != "***" {
		t.Errorf("expected group members to be redacted, got %v", attrs)
	}
}

func TestRedactingHandler_WithAttrs(t *testing.T) {
	buf := &bytes.Buffer{}
	h := NewRedactingHandler(slog.NewTextHandler(buf, nil), NewRedactor(nil))
	logger := slog.New(h).With("machine", "BUILD-01").WithGroup("g")

	logger.Info("password=abc", "token", "t0k")

	out := buf.String()
	for _, leaked := range []string{"BUILD-01", "abc", "t0k"} {
		if strings.Contains(out, leaked) {
			t.Errorf("expected %q to be redacted, got %s", leaked, out)
		}
	}
	if !strings.Contains(out, "machine=B***") {
		t.Errorf("expected redacted machine attr, got %s", out)
	}
}

func TestRedactName(t *testing.T) {
	if got := RedactName(""); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	if got := RedactName("Ärger"); got != "Ä***" {
		t.Errorf("expected %q, got %q", "Ä***", got)
	}
}
