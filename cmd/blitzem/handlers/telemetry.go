package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/imamik/blitzem/internal/lifecycle"
)

// newTracerProvider creates a tracer provider printing every span to w.
func newTracerProvider(w io.Writer, environment string) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	res := sdkresource.NewSchemaless(
		attribute.String("service.name", "blitzem"),
		attribute.String("environment", environment),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	), nil
}

// telemetry holds the per-run metrics registry and tracer provider.
type telemetry struct {
	registry    *prometheus.Registry
	metrics     *lifecycle.Metrics
	provider    *sdktrace.TracerProvider
	metricsFile string
}

func newTelemetry(opts *Options, environment string) (*telemetry, error) {
	reg := prometheus.NewRegistry()
	t := &telemetry{
		registry:    reg,
		metrics:     lifecycle.NewMetrics(reg),
		metricsFile: opts.MetricsFile,
	}
	if opts.Trace {
		tp, err := newTracerProvider(stderr, environment)
		if err != nil {
			return nil, err
		}
		t.provider = tp
	}
	return t, nil
}

func (t *telemetry) orchestrator() *lifecycle.Orchestrator {
	opts := []lifecycle.Option{lifecycle.WithMetrics(t.metrics)}
	if t.provider != nil {
		opts = append(opts, lifecycle.WithTracer(t.provider.Tracer(lifecycle.TracerName)))
	}
	return lifecycle.New(opts...)
}

// flush writes the metrics file and shuts the tracer provider down.
func (t *telemetry) flush(ctx context.Context) error {
	if t.provider != nil {
		if err := t.provider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down tracing: %w", err)
		}
	}
	if t.metricsFile != "" {
		if err := prometheus.WriteToTextfile(t.metricsFile, t.registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
