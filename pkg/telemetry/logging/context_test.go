package logging

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	ctx = WithOperation(ctx, "scan")
	ctx = WithFile(ctx, "a.codxf")
	ctx = WithKind(ctx, "components")
	ctx = WithProject(ctx, "1d5bb8cf-6f0c-4c8b-9f57-3b2f1b51f3a1")
	ctx = WithTraceID(ctx, "trace-1")
	ctx = WithSpanID(ctx, "span-1")

	tests := []struct {
		name string
		get  func(context.Context) string
		want string
	}{
		{"operation", GetOperation, "scan"},
		{"file", GetFile, "a.codxf"},
		{"kind", GetKind, "components"},
		{"project", GetProject, "1d5bb8cf-6f0c-4c8b-9f57-3b2f1b51f3a1"},
		{"trace", GetTraceID, "trace-1"},
		{"span", GetSpanID, "span-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.get(ctx); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestContextAccessors_Empty(t *testing.T) {
	if got := GetFile(context.Background()); got != "" {
		t.Errorf("expected empty file, got %q", got)
	}
}

func TestExtractContextFields(t *testing.T) {
	ctx := WithFile(WithOperation(context.Background(), "convert"), "x.mvdxf")

	want := []any{"operation", "convert", "file", "x.mvdxf"}
	if diff := cmp.Diff(want, extractContextFields(ctx)); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if got := extractContextFields(context.Background()); len(got) != 0 {
		t.Errorf("expected no fields, got %v", got)
	}
}
