// Package tracing provides OpenTelemetry tracing for the simdxf commands.
//
// Every command runs in a root span; each file read or written gets a
// child span. SpanObserver attaches the read and write statistics of
// pkg/dxf/files to that span:
//
//	ctx, span := tracer.Start(ctx, "simdxf.read", trace.WithAttributes(tracing.FileAttributes(path, kind)...))
//	defer span.End()
//	opts.Observer = tracing.SpanObserver{Span: span, Next: collector}
//
// Spans are exported over OTLP/gRPC. A trace context passed in the
// TRACEPARENT environment variable becomes the parent of the root span.
package tracing
