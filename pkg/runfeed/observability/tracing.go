package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the notification-layer tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("runfeed")

// SpanManager handles trace span lifecycle around event delivery.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEventSpan starts a span covering delivery of one lifecycle
	// event to every listener.
	StartEventSpan(ctx context.Context, event string) (context.Context, trace.Span)

	// EndSpan completes a span started by StartEventSpan.
	EndSpan(span trace.Span)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartEventSpan starts a span for one event delivery.
func (m *otelSpanManager) StartEventSpan(ctx context.Context, event string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "runfeed.notify."+event,
		trace.WithAttributes(
			attribute.String("event", event),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan completes a delivery span. Delivery itself cannot fail for
// the caller, so the span status is always Ok; listener failures show
// up as span events instead.
func (m *otelSpanManager) EndSpan(span trace.Span) {
	if span == nil {
		return
	}
	span.SetStatus(codes.Ok, "")
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
