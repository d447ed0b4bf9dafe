// Package catalog keeps an SQLite index of the SIMULTAN files found in a
// directory tree.
//
// Each record holds the file's kind, declared version, size, content hash
// and the outcome of reading it: entity count, unresolved and foreign
// references, warnings, or the error that stopped the read. The catalog
// answers questions like "which files still need an upgrade" or "which
// files have dangling references" without reopening every file.
//
// # Drivers
//
// Two database/sql drivers are supported:
//
//   - "sqlite": modernc.org/sqlite, pure Go (default)
//   - "sqlite3": github.com/mattn/go-sqlite3, requires cgo
//
// # Retention
//
// Pruner removes records that were not refreshed within the retention
// period and caps the total record count. Scheduler runs it on a cron
// expression:
//
//	pruner := catalog.NewPruner(store, catalog.RetentionConfig{Days: 30})
//	sched := catalog.NewScheduler(pruner, "0 3 * * *")
//	if err := sched.Start(ctx); err != nil { ... }
package catalog
