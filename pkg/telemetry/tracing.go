package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "backtension"

// TracerConfig configures lifecycle tracing.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "backtension").
	TracerName string

	// Provider overrides the global tracer provider.
	Provider trace.TracerProvider
}

// TracerOption configures lifecycle tracing.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(p trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = p
	}
}

// Tracer starts one span per lifecycle operation.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer resolves a tracer from the configured or global provider.
// Configure the global provider in main() before creating views:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider != nil {
		return &Tracer{tracer: config.Provider.Tracer(config.TracerName)}
	}
	return &Tracer{tracer: otel.Tracer(config.TracerName)}
}

// Start opens a span named "view.<op>" tagged with the view's namespace.
// On a nil Tracer it returns ctx and a non-recording span.
func (t *Tracer) Start(ctx context.Context, op, namespace string, deferred bool) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if t == nil || t.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, "view."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("backtension.view", namespace),
			attribute.Bool("backtension.deferred", deferred),
		),
	)
}
