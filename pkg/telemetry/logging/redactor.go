package logging

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"
)

// Redactor removes sensitive values from log attributes: user file key
// material, passwords, user and machine names and home directories in
// paths.
type Redactor struct {
	patterns []*redactPattern
}

// redactPattern contains a compiled regex and replacement string.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternPassword    = "password"
	PatternKeyMaterial = "key_material"
	PatternBearerToken = "bearer_token"
	PatternEmail       = "email"
	PatternHomePath    = "home_path"
)

var defaultPatterns = []struct {
	name        string
	regex       string
	replacement string
}{
	{PatternPassword, `(?i)(password|passwd|pwd)[:=]\s*[^\s]+`, "$1: ***"},
	{PatternKeyMaterial, `(?i)(key|secret)[:=]\s*[A-Za-z0-9+/=_-]{16,}`, "$1: ***"},
	{PatternBearerToken, `Bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer ***"},
	{PatternEmail, `([a-zA-Z0-9._%+-])[a-zA-Z0-9._%+-]*@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`, "$1***@$2"},
	{PatternHomePath, `(/home/|/Users/|[A-Za-z]:\\Users\\)[^/\\\s]+`, "${1}***"},
}

// NewRedactor creates a Redactor with the built-in patterns followed by
// the custom ones. Invalid custom patterns are skipped; config validation
// reports them.
func NewRedactor(custom []config.RedactPattern) *Redactor {
	r := &Redactor{}
	for _, p := range defaultPatterns {
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.name,
			regex:       regexp.MustCompile(p.regex),
			replacement: p.replacement,
		})
	}
	for _, p := range custom {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		r.patterns = append(r.patterns, &redactPattern{
			name:        p.Name,
			regex:       regex,
			replacement: p.Replacement,
		})
	}
	return r
}

// RedactString applies every pattern to value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// RedactAttr redacts one attribute. Groups are redacted recursively and
// errors are replaced by their redacted message.
func (r *Redactor) RedactAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	switch {
	case a.Value.Kind() == slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = r.RedactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case isSecretKey(a.Key):
		return slog.String(a.Key, RedactSecret(a.Value.String()))
	case isIdentityKey(a.Key):
		return slog.String(a.Key, RedactName(a.Value.String()))
	case a.Value.Kind() == slog.KindString:
		return slog.String(a.Key, r.RedactString(a.Value.String()))
	case a.Value.Kind() == slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, r.RedactString(err.Error()))
		}
	}
	return a
}

var secretKeys = []string{
	"password", "passwd", "pwd", "passphrase",
	"secret", "token", "private_key", "user_key", "encryption_key",
}

func isSecretKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func isIdentityKey(key string) bool {
	switch strings.ToLower(key) {
	case "user", "user_name", "username", "machine", "machine_name", "host":
		return true
	}
	return false
}

// RedactSecret hides a secret completely. Only its presence is kept.
func RedactSecret(value string) string {
	if value == "" {
		return ""
	}
	return "***"
}

// RedactName keeps the first character of a user or machine name.
func RedactName(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	return string(runes[0]) + "***"
}

// RedactingHandler is a slog.Handler that redacts every attribute before
// passing the record on.
type RedactingHandler struct {
	next     slog.Handler
	redactor *Redactor
}

// NewRedactingHandler wraps next.
func NewRedactingHandler(next slog.Handler, r *Redactor) *RedactingHandler {
	return &RedactingHandler{next: next, redactor: r}
}

// Enabled reports whether next handles records at level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle redacts the record's attributes and message.
func (h *RedactingHandler) Handle(ctx context.Context, rec slog.Record) error {
	out := slog.NewRecord(rec.Time, rec.Level, h.redactor.RedactString(rec.Message), rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redactor.RedactAttr(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

// WithAttrs redacts attrs once and attaches them to next.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	red := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		red[i] = h.redactor.RedactAttr(a)
	}
	return &RedactingHandler{next: h.next.WithAttrs(red), redactor: h.redactor}
}

// WithGroup opens a group on next.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{next: h.next.WithGroup(name), redactor: h.redactor}
}
