package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records notification-layer metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records one delivered event: its type, how many
	// listeners it was delivered to, and the total delivery duration.
	RecordDispatch(ctx context.Context, event string, listeners int, duration time.Duration)

	// RecordListenerFailure records a failed listener method call or a
	// failed listener construction (method "construct").
	RecordListenerFailure(ctx context.Context, listener, method string)

	// RecordListenersActive records the number of adapters a registry
	// ended up with after construction.
	RecordListenersActive(ctx context.Context, count int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches       metric.Int64Counter
	dispatchLatency  metric.Float64Histogram
	listenerFailures metric.Int64Counter
	listenersActive  metric.Int64UpDownCounter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("runfeed")

	dispatches, err := meter.Int64Counter("runfeed.dispatch.events",
		metric.WithDescription("Number of lifecycle events delivered to listeners"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("runfeed.dispatch.latency_ms",
		metric.WithDescription("Event delivery latency across all listeners in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	listenerFailures, err := meter.Int64Counter("runfeed.listener.failures",
		metric.WithDescription("Number of failed listener constructions and method calls"),
	)
	if err != nil {
		return nil, err
	}

	listenersActive, err := meter.Int64UpDownCounter("runfeed.listener.active",
		metric.WithDescription("Number of active listener adapters"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:       dispatches,
		dispatchLatency:  dispatchLatency,
		listenerFailures: listenerFailures,
		listenersActive:  listenersActive,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records one delivered event.
func (m *otelMetrics) RecordDispatch(ctx context.Context, event string, listeners int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("event", event),
	}
	m.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.dispatchLatency.Record(ctx, float64(duration.Microseconds())/1000.0,
		metric.WithAttributes(attrs...))
}

// RecordListenerFailure records a failed construction or method call.
func (m *otelMetrics) RecordListenerFailure(ctx context.Context, listener, method string) {
	m.listenerFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("listener", listener),
		attribute.String("method", method),
	))
}

// RecordListenersActive records the active adapter count.
func (m *otelMetrics) RecordListenersActive(ctx context.Context, count int) {
	m.listenersActive.Add(ctx, int64(count))
}
