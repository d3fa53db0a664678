package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// ExportConfig configures OTLP/HTTP span export.
type ExportConfig struct {
	// Endpoint is the collector host:port. Empty falls back to
	// OTEL_EXPORTER_OTLP_ENDPOINT; when both are empty export is off.
	Endpoint string

	// ServiceName is reported as service.name. Empty falls back to
	// OTEL_SERVICE_NAME, then "backtension".
	ServiceName string

	// Insecure disables TLS to the collector.
	Insecure bool
}

// NewTracerProvider builds an SDK provider that batches spans to an OTLP
// collector. It returns nil, nil when no endpoint is configured. Callers
// own the provider and must Shutdown it to flush pending spans.
func NewTracerProvider(ctx context.Context, cfg ExportConfig) (*sdktrace.TracerProvider, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if endpoint == "" {
		return nil, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	name := cfg.ServiceName
	if name == "" {
		name = os.Getenv("OTEL_SERVICE_NAME")
	}
	if name == "" {
		name = defaultTracerName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(name),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}
