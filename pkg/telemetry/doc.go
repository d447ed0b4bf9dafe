// Package telemetry groups the observability of the simdxf tools.
//
// # Components
//
//   - logging: structured slog logging with redaction of key material and paths
//   - metrics: Prometheus metrics of file reads, writes and the catalog
//   - tracing: OpenTelemetry spans around reads, writes and commands
//   - health: liveness and readiness probes served by the watch command
//
// # Usage
//
//	log, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//
//	ctx, span := tracer.Start(ctx, "simdxf.read")
//	defer span.End()
//	res, err := files.Components.Read(r, files.ReadOptions{
//	    Logger:   log.Slog(),
//	    Observer: tracing.SpanObserver{Span: span, Next: collector},
//	})
//
// Both metrics.Collector and tracing.SpanObserver implement files.Observer,
// so one read feeds the metrics and the span attributes.
package telemetry
