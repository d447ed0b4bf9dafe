// Package health serves the liveness and readiness probes of the
// long-running simdxf watch command.
//
// Liveness (/health) only reports that the process runs. Readiness
// (/ready) runs every registered check concurrently, each bounded by the
// checker's timeout, and answers 503 when one fails:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("catalog", health.PingCheck(store))
//	checker.RegisterCheck("user_key", health.KeyCheck(provider))
//	checker.RegisterCheck("watch_root", health.DirCheck(root))
//
//	mux := http.NewServeMux()
//	health.Mount(mux, checker, health.VersionInfo{Version: "1.2.0", FormatVersion: 31})
package health
