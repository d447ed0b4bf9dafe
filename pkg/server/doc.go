// Package server serves the status endpoints of long running commands.
//
// The watch command exposes Prometheus metrics and the health probes of
// package health on one listener:
//
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", collector.Handler())
//	health.Mount(mux, checker, info)
//
//	srv := server.New(server.Config{ListenAddress: ":9464"}, mux, logger)
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until ctx is cancelled and then shuts the listener down,
// waiting up to Config.ShutdownTimeout for requests in flight.
//
// # Middleware
//
// Requests pass through, outermost first:
//  1. Recovery: turns panics into 500 responses
//  2. Logging: logs method, path, status and latency
//  3. RequestID: propagates or generates X-Request-ID
package server
