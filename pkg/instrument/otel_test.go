package instrument

import (
	"testing"
	"time"

	"github.com/vango-dev/reactive/pkg/reactive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var timeZero = time.Unix(0, 0)

func newRecordingTracer(opts ...OTelOption) (*Tracer, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	opts = append([]OTelOption{WithTracerProvider(tp)}, opts...)
	return OpenTelemetry(opts...), sr
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestOpenTelemetryObserver_NotifySpan(t *testing.T) {
	tracer, sr := newRecordingTracer()
	st := reactive.NewStore(reactive.WithObserver(tracer))

	a := reactive.NewSignalIn(st, 0)
	_ = st.CreateEffect(func() {}, a)
	_ = st.CreateEffect(func() {}, reactive.NewSignalIn(st, 0))

	_ = a.Set(1)

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != SpanNotify {
		t.Errorf("span name = %q, want %q", span.Name(), SpanNotify)
	}
	if v, ok := spanAttr(span, "reactive.signal_id"); !ok || v.AsInt64() != int64(a.ID()) {
		t.Errorf("reactive.signal_id = %v, want %d", v.AsInt64(), a.ID())
	}
	if v, _ := spanAttr(span, "reactive.effects_scanned"); v.AsInt64() != 2 {
		t.Errorf("reactive.effects_scanned = %d, want 2", v.AsInt64())
	}
	if v, _ := spanAttr(span, "reactive.effects_invoked"); v.AsInt64() != 1 {
		t.Errorf("reactive.effects_invoked = %d, want 1", v.AsInt64())
	}
	if span.EndTime().Before(span.StartTime()) {
		t.Error("span ends before it starts")
	}
}

func TestOpenTelemetryObserver_ExplicitTimestamps(t *testing.T) {
	tracer, sr := newRecordingTracer()

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tracer.Notified(7, 3, 1, start, 250*time.Millisecond)

	span := sr.Ended()[0]
	if !span.StartTime().Equal(start) {
		t.Errorf("start = %v, want %v", span.StartTime(), start)
	}
	if got := span.EndTime().Sub(span.StartTime()); got != 250*time.Millisecond {
		t.Errorf("duration = %v, want 250ms", got)
	}
}

func TestOpenTelemetryObserver_SkipIdle(t *testing.T) {
	tracer, sr := newRecordingTracer(WithSkipIdle(true))
	st := reactive.NewStore(reactive.WithObserver(tracer))

	a := reactive.NewSignalIn(st, 0)
	_ = a.Set(1)
	if len(sr.Ended()) != 0 {
		t.Fatalf("expected idle pass to be skipped, got %d spans", len(sr.Ended()))
	}

	_ = st.CreateEffect(func() {}, a)
	_ = a.Set(2)
	if len(sr.Ended()) != 1 {
		t.Fatalf("expected 1 span, got %d", len(sr.Ended()))
	}
}

func TestOpenTelemetryObserver_RejectSpan(t *testing.T) {
	tracer, sr := newRecordingTracer()
	st := reactive.NewStore(reactive.WithObserver(tracer))

	c := reactive.NewComputedIn(st, func() string { return "" })
	_ = c.Set("nope")

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != SpanReject {
		t.Errorf("span name = %q, want %q", span.Name(), SpanReject)
	}
	if span.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", span.Status().Code)
	}
	if v, _ := spanAttr(span, "reactive.rejection"); v.AsString() != "read_only" {
		t.Errorf("reactive.rejection = %q, want read_only", v.AsString())
	}
	if len(span.Events()) == 0 {
		t.Error("expected RecordError to add an exception event")
	}
}

func TestOpenTelemetryObserver_RegistrationSpans(t *testing.T) {
	tracer, sr := newRecordingTracer(WithRegistrationSpans(true), WithTracerName("custom"))
	st := reactive.NewStore(reactive.WithObserver(tracer))

	a := reactive.NewSignalIn(st, 0)
	_ = st.CreateEffect(func() {}, a)

	spans := sr.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name() != SpanSignal || spans[1].Name() != SpanRegister {
		t.Errorf("span names = %q, %q", spans[0].Name(), spans[1].Name())
	}
	if spans[0].InstrumentationScope().Name != "custom" {
		t.Errorf("tracer name = %q, want custom", spans[0].InstrumentationScope().Name)
	}
	if v, _ := spanAttr(spans[1], "reactive.watch"); len(v.AsInt64Slice()) != 1 {
		t.Errorf("reactive.watch = %v, want one ID", v.AsInt64Slice())
	}
}

func TestOpenTelemetryObserver_NoRegistrationSpansByDefault(t *testing.T) {
	tracer, sr := newRecordingTracer(WithParent(nil))
	st := reactive.NewStore(reactive.WithObserver(tracer))

	a := reactive.NewSignalIn(st, 0)
	_ = st.CreateEffect(func() {}, a)

	if len(sr.Ended()) != 0 {
		t.Errorf("expected no spans, got %d", len(sr.Ended()))
	}
}
