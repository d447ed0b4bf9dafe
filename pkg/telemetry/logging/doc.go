// Package logging provides structured logging with redaction of
// sensitive values.
//
// # Overview
//
// The package builds a log/slog handler chain:
//   - JSON, text or console output
//   - redaction of user file keys, passwords, user and machine names and
//     home directories
//   - context fields (operation, file, kind, project, trace and span IDs)
//
// The dxf packages log through a plain *slog.Logger; Slog hands them one
// backed by the same chain.
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	ctx = logging.WithFile(ctx, "project.codxf")
//	logger.InfoContext(ctx, "file read", "entities", 412)
//
//	opts := files.ReadOptions{Logger: logger.Slog()}
package logging
