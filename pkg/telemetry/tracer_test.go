package telemetry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/elishacook/microfun/pkg/flow"
)

var _ flow.Observer = (*Tracer)(nil)

type recordedSpan struct {
	trace.Span
	name   string
	attrs  []attribute.KeyValue
	start  time.Time
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) {
	s.errs = append(s.errs, err)
}

func (s *recordedSpan) End(...trace.SpanEndOption) { s.ended = true }

func (s *recordedSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

type recordingTracer struct {
	embedded.Tracer
	mu    sync.Mutex
	spans []*recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	_, base := noop.NewTracerProvider().Tracer("").Start(ctx, name)
	span := &recordedSpan{
		Span:  base,
		name:  name,
		attrs: cfg.Attributes(),
		start: cfg.Timestamp(),
	}
	r.mu.Lock()
	r.spans = append(r.spans, span)
	r.mu.Unlock()
	return trace.ContextWithSpan(ctx, span), span
}

type recordingProvider struct {
	embedded.TracerProvider
	tracer *recordingTracer
	name   string
}

func (p *recordingProvider) Tracer(name string, _ ...trace.TracerOption) trace.Tracer {
	p.name = name
	return p.tracer
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{tracer: &recordingTracer{}}
}

func TestTracerFlushSpan(t *testing.T) {
	p := newRecordingProvider()
	tr := NewTracer(WithTracerProvider(p), WithTracerName("counter"))
	if p.name != "counter" {
		t.Errorf("tracer name = %q, want counter", p.name)
	}

	tr.Committed(1)
	tr.Committed(2)
	before := time.Now()
	tr.Flushed(5*time.Millisecond, nil)

	if len(p.tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(p.tracer.spans))
	}
	span := p.tracer.spans[0]
	if span.name != "microfun.flush" || !span.ended || span.status != codes.Ok {
		t.Errorf("span = %+v", span)
	}
	if v, ok := span.attr("microfun.commits"); !ok || v.AsInt64() != 2 {
		t.Errorf("commits attribute = %v, %v; want 2", v.AsInt64(), ok)
	}
	if !span.start.Before(before) {
		t.Errorf("span start %v should be backdated by the flush duration", span.start)
	}

	tr.Flushed(time.Millisecond, nil)
	if v, _ := p.tracer.spans[1].attr("microfun.commits"); v.AsInt64() != 0 {
		t.Errorf("commit count should reset after each flush, got %d", v.AsInt64())
	}
}

func TestTracerErrorStatus(t *testing.T) {
	p := newRecordingProvider()
	tr := NewTracer(WithTracerProvider(p))
	if p.name != defaultTracerName {
		t.Errorf("tracer name = %q, want %q", p.name, defaultTracerName)
	}

	boom := errors.New("boom")
	tr.Flushed(time.Millisecond, boom)
	tr.TaskSettled(boom)
	tr.TaskSettled(nil)

	if len(p.tracer.spans) != 3 {
		t.Fatalf("spans = %d, want 3", len(p.tracer.spans))
	}
	for i, span := range p.tracer.spans[:2] {
		if span.status != codes.Error || len(span.errs) != 1 {
			t.Errorf("span %d (%s) status = %v, errs = %v", i, span.name, span.status, span.errs)
		}
	}
	if last := p.tracer.spans[2]; last.name != "microfun.task" || last.status != codes.Ok {
		t.Errorf("task span = %+v", last)
	}
}

func TestTracerDefaultProvider(t *testing.T) {
	tr := NewTracer()
	// The global provider is a no-op by default; this must not panic.
	tr.Flushed(time.Millisecond, nil)
	tr.TaskSettled(nil)
}
