package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// OperationKey is the context key for the running command or operation.
	OperationKey contextKey = "operation"

	// FileKey is the context key for the file being processed.
	FileKey contextKey = "file"

	// KindKey is the context key for the file kind.
	KindKey contextKey = "kind"

	// ProjectKey is the context key for the project GUID.
	ProjectKey contextKey = "project"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"

	// SpanIDKey is the context key for span IDs.
	SpanIDKey contextKey = "span_id"
)

var contextKeys = []contextKey{OperationKey, FileKey, KindKey, ProjectKey, TraceIDKey, SpanIDKey}

// WithOperation adds an operation name to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, OperationKey, op)
}

// GetOperation retrieves the operation name from the context.
func GetOperation(ctx context.Context) string { return get(ctx, OperationKey) }

// WithFile adds a file path to the context.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, FileKey, file)
}

// GetFile retrieves the file path from the context.
func GetFile(ctx context.Context) string { return get(ctx, FileKey) }

// WithKind adds a file kind to the context.
func WithKind(ctx context.Context, kind string) context.Context {
	return context.WithValue(ctx, KindKey, kind)
}

// GetKind retrieves the file kind from the context.
func GetKind(ctx context.Context) string { return get(ctx, KindKey) }

// WithProject adds a project GUID to the context.
func WithProject(ctx context.Context, project string) context.Context {
	return context.WithValue(ctx, ProjectKey, project)
}

// GetProject retrieves the project GUID from the context.
func GetProject(ctx context.Context) string { return get(ctx, ProjectKey) }

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string { return get(ctx, TraceIDKey) }

// WithSpanID adds a span ID to the context.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, SpanIDKey, spanID)
}

// GetSpanID retrieves the span ID from the context.
func GetSpanID(ctx context.Context) string { return get(ctx, SpanIDKey) }

func get(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

// extractContextFields returns the fields stored in ctx as key-value pairs.
func extractContextFields(ctx context.Context) []any {
	var fields []any
	for _, k := range contextKeys {
		if v := get(ctx, k); v != "" {
			fields = append(fields, string(k), v)
		}
	}
	return fields
}

// contextHandler adds the context fields to every record logged with a
// context, including records logged through the plain *slog.Logger.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	rec = rec.Clone()
	for _, k := range contextKeys {
		if v := get(ctx, k); v != "" {
			rec.AddAttrs(slog.String(string(k), v))
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{h.Handler.WithGroup(name)}
}
