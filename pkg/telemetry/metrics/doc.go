// Package metrics provides Prometheus metrics for SIMULTAN file I/O.
//
// # Overview
//
// Collector implements files.Observer. Every read and write made with the
// collector as observer updates:
//
//   - read and write counts by file kind and status
//   - read and write durations
//   - declared file versions
//   - reference resolution outcomes and warnings
//   - applied migrations
//
// The catalog and the directory watcher report through RecordScan,
// RecordPruned and RecordWatchEvent.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	res, err := files.Components.Read(r, files.ReadOptions{Observer: collector})
//	mux.Handle("/metrics", collector.Handler())
//
// # Status Labels
//
// A successful operation has status "ok". Failures are labeled with the
// error type: lexical, structural, version, reference, migration or io.
package metrics
