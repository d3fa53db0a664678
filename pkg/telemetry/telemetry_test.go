package telemetry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ViewCreated()
	m.ViewRemoved()
	m.LifecycleOp("remove", true)
	m.GlobalBindingsChanged(3)
	m.ZonesResolved(2)
	m.TaskDeferred()
	m.TaskRan()
	m.TaskPanicked()
}

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.ViewCreated()
	m.ViewCreated()
	m.ViewRemoved()
	m.LifecycleOp("remove", false)
	m.LifecycleOp("remove", true)
	m.LifecycleOp("remove", true)
	m.GlobalBindingsChanged(3)
	m.GlobalBindingsChanged(-1)
	m.TaskDeferred()

	if got := testutil.ToFloat64(m.viewsLive); got != 1 {
		t.Errorf("views_live = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.viewsCreated); got != 2 {
		t.Errorf("views_created_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.lifecycleOps.WithLabelValues("remove", "deferred")); got != 2 {
		t.Errorf("lifecycle_ops_total{remove,deferred} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.globalBindings); got != 2 {
		t.Errorf("global_bindings = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.tasksDeferred); got != 1 {
		t.Errorf("deferred_tasks_total = %v, want 1", got)
	}
}

func TestTracerStart(t *testing.T) {
	var nilTracer *Tracer
	ctx, span := nilTracer.Start(context.Background(), "remove", "view1", false)
	if ctx == nil || span == nil {
		t.Fatal("nil tracer should still return a context and span")
	}
	span.End()

	tr := NewTracer(WithTracerProvider(noop.NewTracerProvider()), WithTracerName("t"))
	_, span = tr.Start(context.Background(), "disable", "view2", true)
	if span == nil {
		t.Fatal("span is nil")
	}
	span.End()
}

func TestTracerRecordsLifecycleSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer tp.Shutdown(context.Background())

	tr := NewTracer(WithTracerProvider(tp))
	_, span := tr.Start(context.Background(), "remove", "view3", true)
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(ended))
	}
	if got := ended[0].Name(); got != "view.remove" {
		t.Errorf("span name = %q, want %q", got, "view.remove")
	}

	want := map[attribute.Key]attribute.Value{
		"backtension.view":     attribute.StringValue("view3"),
		"backtension.deferred": attribute.BoolValue(true),
	}
	for _, kv := range ended[0].Attributes() {
		if w, ok := want[kv.Key]; ok {
			if kv.Value != w {
				t.Errorf("%s = %v, want %v", kv.Key, kv.Value.Emit(), w.Emit())
			}
			delete(want, kv.Key)
		}
	}
	for k := range want {
		t.Errorf("missing attribute %s", k)
	}
}

func TestNewTracerProviderDisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	tp, err := NewTracerProvider(context.Background(), ExportConfig{})
	if err != nil {
		t.Fatalf("NewTracerProvider: %v", err)
	}
	if tp != nil {
		t.Error("provider should be nil when no endpoint is configured")
	}
}

func TestNewTracerProviderWithEndpoint(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), ExportConfig{
		Endpoint:    "localhost:4318",
		ServiceName: "test",
		Insecure:    true,
	})
	if err != nil {
		t.Fatalf("NewTracerProvider: %v", err)
	}
	if tp == nil {
		t.Fatal("provider is nil")
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
