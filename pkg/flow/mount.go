package flow

import (
	"log/slog"

	"github.com/elishacook/microfun/pkg/frame"
)

type mountOptions struct {
	clock    frame.Clock
	loop     *Loop
	observer Observer
	logger   *slog.Logger
}

// Option configures Mount.
type Option func(*mountOptions)

// WithClock sets the frame clock. With a loop the default is a
// frame.Interval with frame.DefaultInterval, stopped by App.Close. Without
// one it is frame.Immediate, so frames run on the dispatching goroutine. A
// clock that fires on its own goroutine needs WithLoop.
func WithClock(c frame.Clock) Option {
	return func(o *mountOptions) { o.clock = c }
}

// WithLoop makes the loop the model's owner: task completions and frame
// flushes are posted to it.
func WithLoop(l *Loop) Option {
	return func(o *mountOptions) { o.loop = l }
}

// WithObserver registers lifecycle hooks. Use Observers to register several.
func WithObserver(obs Observer) Option {
	return func(o *mountOptions) { o.observer = obs }
}

// WithLogger sets the logger used by the app and its renderer.
func WithLogger(l *slog.Logger) Option {
	return func(o *mountOptions) { o.logger = l }
}

// App is a mounted application.
type App[M any] struct {
	model    M
	view     View[M]
	signal   Signal[M]
	renderer *Renderer[M]
	observer Observer
	logger   *slog.Logger
	stop     func()
}

// Mount binds a model to target. It draws view(initial) synchronously, then
// calls each channel in order with the root signal. With a loop, call Mount
// before Loop.Run or from a function posted to the loop.
func Mount[M any](target Target, initial M, view View[M], channels []Channel[M], opts ...Option) *App[M] {
	o := &mountOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default().With("component", "flow")
	}
	if o.observer == nil {
		o.observer = NopObserver{}
	}

	a := &App[M]{
		model:    initial,
		view:     view,
		observer: o.observer,
		logger:   o.logger,
		stop:     func() {},
	}

	switch {
	case o.clock != nil:
	case o.loop == nil:
		o.clock = frame.Immediate{}
	default:
		interval := frame.NewInterval(frame.DefaultInterval)
		o.clock = interval
		a.stop = interval.Stop
	}

	a.signal = Signal[M]{
		get: func() M { return a.model },
		set: a.commit,
		obs: o.observer,
	}
	if o.loop != nil {
		loop := o.loop
		a.signal.post = func(fn func()) {
			if err := loop.Post(fn); err != nil {
				a.logger.Warn("posted work dropped", "error", err)
			}
		}
	}

	a.renderer = NewRenderer(target, a.signal, o.clock)
	a.renderer.logger = o.logger

	if err := a.renderer.Draw(initial, view); err != nil {
		a.logger.Error("initial render failed", "error", err)
	}

	for _, ch := range channels {
		ch(a.signal)
	}
	return a
}

func (a *App[M]) commit(m M) {
	a.observer.Dispatched()
	a.model = m
	a.observer.Committed(m)
	a.logger.Debug("model committed")
	a.renderer.Render(m, a.view)
}

// Model returns the committed model. Call it from the goroutine that owns
// the model.
func (a *App[M]) Model() M {
	return a.model
}

// Signal returns the root signal.
func (a *App[M]) Signal() Signal[M] {
	return a.signal
}

// Renderer returns the app's render scheduler.
func (a *App[M]) Renderer() *Renderer[M] {
	return a.renderer
}

// Flush draws now if a frame is pending.
func (a *App[M]) Flush() error {
	return a.renderer.Flush()
}

// Close stops the default frame clock, if Mount created one.
func (a *App[M]) Close() {
	a.stop()
}
