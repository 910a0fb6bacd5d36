// Package telemetry reports what a mounted app does: Prometheus metrics and
// OpenTelemetry spans, both delivered as flow.Observer implementations.
//
//	metrics := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	tracer := telemetry.NewTracer(telemetry.WithTracerName("counter"))
//	app := flow.Mount(target, model, view, nil,
//	    flow.WithObserver(flow.Observers{metrics, tracer}))
//
// Metrics collected (namespace "microfun" by default):
//   - dispatches_total: actions applied to the root model
//   - commits_total: root models committed
//   - renders_coalesced_total: render requests folded into a pending frame
//   - flushes_total{status}: draws by outcome ("ok", "error")
//   - flush_duration_seconds: time spent building and drawing a tree
//   - tasks_total{status}: settled tasks by outcome
//   - live_clients: connected live clients
//   - live_patches_total: patches sent to live clients
//   - live_event_errors_total{reason}: client events that could not be handled
//
// Spans: "microfun.flush" for every draw and "microfun.task" for every
// settled task, with error status on failure.
package telemetry
