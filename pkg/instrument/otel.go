package instrument

import (
	"context"
	"time"

	"github.com/vango-dev/reactive/pkg/reactive"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for reactive stores.
const defaultTracerName = "reactive"

// Span names.
const (
	SpanNotify   = "reactive.notify"
	SpanReject   = "reactive.reject"
	SpanSignal   = "reactive.signal"
	SpanRegister = "reactive.effect"
)

// OTelConfig configures the OpenTelemetry observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "reactive").
	TracerName string

	// TracerProvider supplies the tracer. If nil, the global provider
	// from otel.GetTracerProvider is used.
	TracerProvider trace.TracerProvider

	// Parent is the context new spans are started from
	// (default: context.Background()).
	Parent context.Context

	// RegistrationSpans also records a span for every signal creation and
	// effect registration. Disabled by default.
	RegistrationSpans bool

	// SkipIdle drops notification spans for passes that invoked nothing.
	SkipIdle bool

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithParent sets the context spans are started from.
func WithParent(ctx context.Context) OTelOption {
	return func(c *OTelConfig) {
		c.Parent = ctx
	}
}

// WithRegistrationSpans enables spans for signal creation and effect
// registration.
func WithRegistrationSpans(enabled bool) OTelOption {
	return func(c *OTelConfig) {
		c.RegistrationSpans = enabled
	}
}

// WithSkipIdle drops spans for notification passes that ran no effects.
func WithSkipIdle(skip bool) OTelOption {
	return func(c *OTelConfig) {
		c.SkipIdle = skip
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		Parent:     context.Background(),
	}
}

// Tracer is a reactive.Observer that records notification passes as spans.
type Tracer struct {
	config OTelConfig
}

// OpenTelemetry creates an observer that traces every notification pass.
//
// Each pass becomes a span named "reactive.notify" whose start and end
// timestamps are those of the pass, with attributes reactive.signal_id,
// reactive.effects_scanned and reactive.effects_invoked. Rejected
// operations become "reactive.reject" spans with an error status.
//
// Configure the global tracer provider in main() or pass one with
// WithTracerProvider:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) *Tracer {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Parent == nil {
		config.Parent = context.Background()
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	config.tracer = tp.Tracer(config.TracerName)

	return &Tracer{config: config}
}

// SignalCreated implements reactive.Observer.
func (t *Tracer) SignalCreated(id reactive.ID, kind reactive.Kind) {
	if !t.config.RegistrationSpans {
		return
	}
	_, span := t.config.tracer.Start(t.config.Parent, SpanSignal,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("reactive.signal_id", int64(id)),
			attribute.String("reactive.kind", kind.String()),
		),
	)
	span.End()
}

// EffectRegistered implements reactive.Observer.
func (t *Tracer) EffectRegistered(id reactive.ID, watch []reactive.ID) {
	if !t.config.RegistrationSpans {
		return
	}
	ids := make([]int64, len(watch))
	for i, w := range watch {
		ids[i] = int64(w)
	}
	_, span := t.config.tracer.Start(t.config.Parent, SpanRegister,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("reactive.effect_id", int64(id)),
			attribute.Int64Slice("reactive.watch", ids),
		),
	)
	span.End()
}

// Notified implements reactive.Observer.
func (t *Tracer) Notified(id reactive.ID, scanned, invoked int, start time.Time, elapsed time.Duration) {
	if t.config.SkipIdle && invoked == 0 {
		return
	}
	_, span := t.config.tracer.Start(t.config.Parent, SpanNotify,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(start),
		trace.WithAttributes(
			attribute.Int64("reactive.signal_id", int64(id)),
			attribute.Int("reactive.effects_scanned", scanned),
			attribute.Int("reactive.effects_invoked", invoked),
		),
	)
	span.End(trace.WithTimestamp(start.Add(elapsed)))
}

// Rejected implements reactive.Observer.
func (t *Tracer) Rejected(id reactive.ID, err error) {
	_, span := t.config.tracer.Start(t.config.Parent, SpanReject,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("reactive.signal_id", int64(id)),
			attribute.String("reactive.rejection", rejectionKind(err)),
		),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}
