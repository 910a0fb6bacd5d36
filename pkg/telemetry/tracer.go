package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "microfun"

// TracerConfig configures Tracer.
type TracerConfig struct {
	// TracerName is the instrumentation name (default: "microfun").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider
}

// TracerOption configures Tracer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(p trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = p
	}
}

// Tracer is a flow.Observer that emits a span per draw and per settled task.
// Flush spans carry the number of commits they folded together.
//
// The tracer uses the global OpenTelemetry provider unless one is given;
// configure it in main() before mounting:
//
//	otel.SetTracerProvider(tp)
type Tracer struct {
	tracer trace.Tracer

	mu      sync.Mutex
	commits int
}

// NewTracer creates a Tracer.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider == nil {
		config.Provider = otel.GetTracerProvider()
	}
	return &Tracer{tracer: config.Provider.Tracer(config.TracerName)}
}

// Dispatched implements flow.Observer.
func (t *Tracer) Dispatched() {}

// Committed implements flow.Observer.
func (t *Tracer) Committed(any) {
	t.mu.Lock()
	t.commits++
	t.mu.Unlock()
}

// Coalesced implements flow.Observer.
func (t *Tracer) Coalesced() {}

// Flushed implements flow.Observer.
func (t *Tracer) Flushed(d time.Duration, err error) {
	t.mu.Lock()
	commits := t.commits
	t.commits = 0
	t.mu.Unlock()

	end := time.Now()
	_, span := t.tracer.Start(context.Background(), "microfun.flush",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(end.Add(-d)),
		trace.WithAttributes(
			attribute.Int("microfun.commits", commits),
			attribute.Int64("microfun.flush.duration_us", d.Microseconds()),
		),
	)
	finish(span, err)
	span.End(trace.WithTimestamp(end))
}

// TaskSettled implements flow.Observer.
func (t *Tracer) TaskSettled(err error) {
	_, span := t.tracer.Start(context.Background(), "microfun.task",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	finish(span, err)
	span.End()
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
