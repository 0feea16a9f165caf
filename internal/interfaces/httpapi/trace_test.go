package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.ListLeagues")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context to be returned unchanged")
	}
	if span.SpanContext().IsValid() || trace.SpanFromContext(got).IsRecording() {
		t.Fatalf("expected a non-recording span without a parent")
	}
}
