// Package telemetry collects Prometheus metrics and OpenTelemetry spans for
// view lifecycle activity.
//
// Both Metrics and Tracer are optional. Every method is safe on a nil
// receiver, so the view layer calls them unconditionally.
//
//	reg := prometheus.NewRegistry()
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	rt := view.NewRuntime(doc, queue,
//	    view.WithMetrics(m),
//	    view.WithTracer(telemetry.NewTracer()),
//	)
//
// Metrics collected:
//   - backtension_views_live: Gauge of views created and not yet removed
//   - backtension_views_created_total: Counter of views created
//   - backtension_lifecycle_ops_total: Counter of lifecycle operations by op and mode
//   - backtension_global_bindings: Gauge of window/document bindings held by views
//   - backtension_deferred_tasks_total: Counter of tasks deferred to a later turn
//   - backtension_deferred_tasks_run_total: Counter of deferred tasks that completed
//   - backtension_deferred_task_panics_total: Counter of deferred tasks that panicked
//   - backtension_zone_handles: Histogram of leaf handles per zone resolution
//
// Spans go to the global provider unless one is given. NewTracerProvider
// builds one that exports over OTLP/HTTP:
//
//	tp, err := telemetry.NewTracerProvider(ctx, telemetry.ExportConfig{Endpoint: "localhost:4318"})
//	if tp != nil {
//	    defer tp.Shutdown(ctx)
//	    tracer = telemetry.NewTracer(telemetry.WithTracerProvider(tp))
//	}
package telemetry
