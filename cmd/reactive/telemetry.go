package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/reactive/internal/config"
	"github.com/vango-dev/reactive/pkg/instrument"
	"github.com/vango-dev/reactive/pkg/reactive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// telemetry holds the logger, metrics and tracer shared by every scenario
// in one invocation.
type telemetry struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *instrument.Metrics
	provider trace.TracerProvider
	shutdown func(context.Context) error
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// setupTelemetry builds the logger and, when enabled, the Prometheus
// registry and the OTLP tracer provider. forceMetrics enables metrics
// regardless of config.
func setupTelemetry(ctx context.Context, cfg *config.Config, logOut io.Writer, forceMetrics bool) (*telemetry, error) {
	t := &telemetry{
		cfg:      cfg,
		logger:   newLogger(cfg, logOut),
		shutdown: func(context.Context) error { return nil },
	}

	if cfg.Metrics.Enabled || forceMetrics {
		t.registry = prometheus.NewRegistry()
		t.metrics = instrument.Prometheus(
			instrument.WithNamespace(cfg.Metrics.Namespace),
			instrument.WithRegistry(t.registry),
		)
	}

	if cfg.Tracing.Enabled {
		provider, shutdown, err := newTracerProvider(ctx, cfg.Tracing)
		if err != nil {
			return nil, err
		}
		t.provider = provider
		t.shutdown = shutdown
		t.logger.Debug("tracing enabled", "endpoint", cfg.Tracing.Endpoint, "tracer", cfg.Tracing.TracerName)
	}

	return t, nil
}

// newTracerProvider exports over OTLP/HTTP when an endpoint is set and
// otherwise falls back to the global provider.
func newTracerProvider(ctx context.Context, cfg config.TracingConfig) (trace.TracerProvider, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	if cfg.Endpoint == "" {
		return otel.GetTracerProvider(), noop, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, noop, err
	}

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.TracerName))

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	return tp, tp.Shutdown, nil
}

// storeFor creates a store for one scenario. ctx parents the scenario's
// notification spans.
func (t *telemetry) storeFor(ctx context.Context) *reactive.Store {
	var observers []reactive.Observer
	if t.metrics != nil {
		observers = append(observers, t.metrics)
	}
	if t.provider != nil {
		observers = append(observers, instrument.OpenTelemetry(
			instrument.WithTracerName(t.cfg.Tracing.TracerName),
			instrument.WithTracerProvider(t.provider),
			instrument.WithParent(ctx),
		))
	}
	if t.logger.Enabled(ctx, slog.LevelDebug) {
		observers = append(observers, instrument.Logger(t.logger))
	}

	return reactive.NewStore(reactive.WithObserver(instrument.Multi(observers...)))
}

// startScenario opens the span that parents one scenario's notification
// spans. Without tracing it returns ctx and a no-op end.
func (t *telemetry) startScenario(ctx context.Context, name string) (context.Context, func(error)) {
	if t.provider == nil {
		return ctx, func(error) {}
	}
	ctx, span := t.provider.Tracer(t.cfg.Tracing.TracerName).Start(ctx, "reactive.scenario "+name)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
