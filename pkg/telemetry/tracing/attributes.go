package tracing

import (
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrFilePath    = attribute.Key("simdxf.file.path")
	AttrFileKind    = attribute.Key("simdxf.file.kind")
	AttrFileVersion = attribute.Key("simdxf.file.version")
	AttrEntities    = attribute.Key("simdxf.entities")
	AttrResolved    = attribute.Key("simdxf.references.resolved")
	AttrUnresolved  = attribute.Key("simdxf.references.unresolved")
	AttrForeign     = attribute.Key("simdxf.references.foreign")
	AttrWarnings    = attribute.Key("simdxf.warnings")
	AttrBytes       = attribute.Key("simdxf.bytes")
	AttrErrorType   = attribute.Key("simdxf.error.type")
	AttrMigration   = attribute.Key("simdxf.migration")
)

// FileAttributes returns the attributes identifying a file.
func FileAttributes(path string, kind files.Kind) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrFilePath.String(path),
		AttrFileKind.String(kind.String()),
	}
}

// SetReadAttributes records the outcome of a read on span. Every applied
// migration becomes an event.
func SetReadAttributes(span trace.Span, s files.ReadStats) {
	span.SetAttributes(
		AttrFileKind.String(s.Kind.String()),
		AttrFileVersion.Int(s.FileVersion),
		AttrEntities.Int(s.Entities),
		AttrResolved.Int(s.Resolved),
		AttrUnresolved.Int(s.Unresolved),
		AttrForeign.Int(s.Foreign),
		AttrWarnings.Int(s.Warnings),
	)
	for _, m := range s.Migrations {
		span.AddEvent("migration", trace.WithAttributes(
			AttrMigration.String(m.Migration),
			attribute.Int("removed", m.Removed),
			attribute.Int("demoted", m.Demoted),
			attribute.Int("mapped", m.Mapped),
			attribute.Int("renamed", m.Renamed),
			attribute.Int("problems", len(m.Problems)),
		))
	}
	SetErrorAttributes(span, s.Err)
}

// SetWriteAttributes records the outcome of a write on span.
func SetWriteAttributes(span trace.Span, s files.WriteStats) {
	span.SetAttributes(
		AttrFileKind.String(s.Kind.String()),
		AttrBytes.Int64(s.Bytes),
	)
	SetErrorAttributes(span, s.Err)
}

// SetErrorAttributes classifies err and sets the span status. A nil error
// leaves the span untouched.
func SetErrorAttributes(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.SetAttributes(AttrErrorType.String(string(dxferrors.TypeOf(err))))
	SetStatus(span, err)
}

// SpanObserver is a files.Observer that records stats on a span and then
// passes them on to Next, e.g. the metrics collector.
type SpanObserver struct {
	Span trace.Span
	Next files.Observer
}

var _ files.Observer = SpanObserver{}

// ObserveRead implements files.Observer.
func (o SpanObserver) ObserveRead(s files.ReadStats) {
	if o.Span != nil {
		SetReadAttributes(o.Span, s)
	}
	if o.Next != nil {
		o.Next.ObserveRead(s)
	}
}

// ObserveWrite implements files.Observer.
func (o SpanObserver) ObserveWrite(s files.WriteStats) {
	if o.Span != nil {
		SetWriteAttributes(o.Span, s)
	}
	if o.Next != nil {
		o.Next.ObserveWrite(s)
	}
}
