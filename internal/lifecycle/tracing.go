package lifecycle

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/imamik/blitzem/internal/resource"
)

// TracerName is the instrumentation name of lifecycle spans.
const TracerName = "github.com/imamik/blitzem/internal/lifecycle"

func defaultTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

func startResourceSpan(ctx context.Context, tracer trace.Tracer, direction Direction, r resource.Resource) (context.Context, trace.Span) {
	return tracer.Start(ctx, "lifecycle."+string(direction),
		trace.WithAttributes(
			attribute.String("resource.name", r.Name()),
			attribute.String("resource.kind", string(r.Kind())),
		),
	)
}

func startHookSpan(ctx context.Context, tracer trace.Tracer, hook Hook, r resource.Resource) (context.Context, trace.Span) {
	return tracer.Start(ctx, "lifecycle.hook."+string(hook),
		trace.WithAttributes(
			attribute.String("resource.name", r.Name()),
			attribute.String("hook", string(hook)),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
