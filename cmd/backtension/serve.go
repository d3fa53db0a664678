package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/backtension/internal/errors"
	"github.com/vango-dev/backtension/internal/inspect"
	"github.com/vango-dev/backtension/pkg/telemetry"
)

func serveCmd() *cobra.Command {
	var (
		in   inputFlags
		opts serveOptions
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the view tree behind a debug server",
		Long: `Build the view tree, drive it on a loop and serve:

  GET  /metrics                 Prometheus metrics
  GET  /debug/zones             resolved zones
  GET  /debug/views             view tree with global binding counts
  GET  /debug/events            counts of watched global events
  POST /debug/dispatch/{event}  fire an event (?selector= picks targets)

Examples:
  backtension serve --html index.html --regions regions.yaml
  backtension serve --watch resize --watch 'click .btn' --addr :9191
  backtension serve --otlp-endpoint localhost:4318 --otlp-insecure`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(in, opts)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Listen address (default from backtension.json)")
	cmd.Flags().StringArrayVarP(&opts.watch, "watch", "w", nil, "Global event spec to bind and count (repeatable)")
	cmd.Flags().StringVar(&opts.otlpEndpoint, "otlp-endpoint", "", "OTLP/HTTP collector for lifecycle spans (default $OTEL_EXPORTER_OTLP_ENDPOINT)")
	cmd.Flags().BoolVar(&opts.otlpInsecure, "otlp-insecure", false, "Send spans without TLS")

	return cmd
}

type serveOptions struct {
	addr         string
	watch        []string
	otlpEndpoint string
	otlpInsecure bool
}

func runServe(in inputFlags, opts serveOptions) error {
	cfg, err := in.settings()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Serve.Addr = opts.addr
	}
	logger := newLogger(cfg)

	doc, err := inspect.LoadDocument(cfg.DocumentPath())
	if err != nil {
		return err
	}
	regions, err := inspect.LoadRegions(cfg.RegionsPath())
	if err != nil {
		return err
	}

	var (
		gatherer prometheus.Gatherer
		metrics  *telemetry.Metrics
	)
	if cfg.MetricsEnabled() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = telemetry.NewMetrics(
			telemetry.WithRegistry(reg),
			telemetry.WithNamespace(cfg.Metrics.Namespace),
			telemetry.WithSubsystem(cfg.Metrics.Subsystem),
		)
		gatherer = reg
	}

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.ExportConfig{
		Endpoint: opts.otlpEndpoint,
		Insecure: opts.otlpInsecure,
	})
	if err != nil {
		return errors.New("E147").Wrap(err)
	}
	var tracerOpts []telemetry.TracerOption
	if tp != nil {
		tracerOpts = append(tracerOpts, telemetry.WithTracerProvider(tp))
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				logger.Warn("span export shutdown failed", "error", err)
			}
		}()
	}

	page, err := inspect.Open(doc, inspect.Options{
		Root:    cfg.Root,
		Regions: regions,
		Watch:   opts.watch,
		Logger:  logger,
		Metrics: metrics,
		Tracer:  telemetry.NewTracer(tracerOpts...),
	})
	if err != nil {
		return err
	}

	views := len(page.Views().Children) + 1

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		page.Queue().Run(ctx)
	}()

	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           inspect.NewRouter(page, gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "address", cfg.Serve.Addr, "views", views)
		errCh <- srv.ListenAndServe()
	}()
	success("Serving %s on %s", cfg.DocumentPath(), cfg.Serve.Addr)

	var serveErr error
	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			serveErr = errors.New("E146").Wrap(err)
		}
	case <-ctx.Done():
		info("Shutting down...")
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// The loop has stopped with ctx; tear the tree down on this goroutine.
	<-loopDone
	page.Close()
	page.Queue().Drain(0)
	logger.Info("server shutdown complete")
	return serveErr
}
