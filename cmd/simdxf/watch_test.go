package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatusHandler(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telemetry.Metrics.Path = "/metrics"
	dir := t.TempDir()

	a, err := newApp(rootCmd)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer a.close()
	store, err := a.openCatalog()
	if err != nil {
		t.Fatalf("openCatalog() error = %v", err)
	}
	defer store.Close()
	a.metrics.RecordWatchEvent("index")

	tests := []struct {
		name     string
		roots    []string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "liveness", roots: []string{dir}, path: "/health", wantCode: http.StatusOK},
		{name: "ready", roots: []string{dir}, path: "/ready", wantCode: http.StatusOK, wantBody: `"catalog"`},
		{name: "missing root", roots: []string{filepath.Join(dir, "gone")}, path: "/ready", wantCode: http.StatusServiceUnavailable},
		{name: "version", roots: []string{dir}, path: "/version", wantCode: http.StatusOK, wantBody: `"format_version":31`},
		{name: "metrics", roots: []string{dir}, path: "/metrics", wantCode: http.StatusOK, wantBody: "watch_events_total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			a.statusHandler(store, tt.roots).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d\n%s", w.Code, tt.wantCode, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q:\n%s", tt.wantBody, w.Body.String())
			}
		})
	}
}
