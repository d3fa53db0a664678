package view

import (
	"log/slog"
	"sync/atomic"

	"github.com/vango-dev/backtension/pkg/dom"
	"github.com/vango-dev/backtension/pkg/loop"
	"github.com/vango-dev/backtension/pkg/telemetry"
)

// globalIDCounter is the source of view IDs. IDs are never reused, so a
// namespace can't collide with another live view's.
var globalIDCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// Runtime is the environment views are created in.
type Runtime struct {
	env     dom.Environment
	sched   loop.Scheduler
	logger  *slog.Logger
	metrics *telemetry.Metrics
	tracer  *telemetry.Tracer
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the structured logger. If nil, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		rt.logger = logger
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(rt *Runtime) {
		rt.metrics = m
	}
}

// WithTracer enables a span per lifecycle operation.
func WithTracer(t *telemetry.Tracer) Option {
	return func(rt *Runtime) {
		rt.tracer = t
	}
}

// NewRuntime creates a runtime. A nil scheduler gets a private loop.Queue,
// which then has to be driven through Scheduler().
func NewRuntime(env dom.Environment, sched loop.Scheduler, opts ...Option) *Runtime {
	rt := &Runtime{env: env, sched: sched}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.logger == nil {
		rt.logger = slog.Default()
	}
	if rt.sched == nil {
		rt.sched = loop.New(loop.WithLogger(rt.logger), loop.WithObserver(rt.metrics))
	}
	return rt
}

// Environment returns the injected window/document environment.
func (rt *Runtime) Environment() dom.Environment { return rt.env }

// Scheduler returns the scheduler used for deferred work.
func (rt *Runtime) Scheduler() loop.Scheduler { return rt.sched }

// Logger returns the runtime logger.
func (rt *Runtime) Logger() *slog.Logger { return rt.logger }

// NewView creates a view in this runtime.
func (rt *Runtime) NewView(cfg Config) *View {
	return New(rt, cfg)
}

// schedule runs fn now or on a later turn.
func (rt *Runtime) schedule(deferred bool, fn func()) {
	if deferred {
		rt.sched.Defer(fn)
		return
	}
	rt.sched.RunNow(fn)
}
