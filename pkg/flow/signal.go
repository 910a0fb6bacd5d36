package flow

// Action is a pure update: it returns the next model without mutating its
// argument.
type Action[M any] func(M) M

// Dispatcher applies a bound action when invoked.
type Dispatcher func()

// HandlerFunc applies an action that takes one call-time argument.
type HandlerFunc[E any] func(E)

// Channel is an external event source. It receives the root signal once at
// mount time and dispatches whenever its events occur.
type Channel[M any] func(Signal[M])

// Signal reads and replaces a model of type M. Signals are small values and
// are meant to be passed around freely; the zero Signal is not usable.
type Signal[M any] struct {
	get  func() M
	set  func(M)
	post func(func())
	obs  Observer
}

// New returns a signal over the given accessors. set is called exactly once
// per dispatch with the new model. Work the signal defers, such as task
// completions, runs inline on whichever goroutine produces it.
func New[M any](get func() M, set func(M)) Signal[M] {
	return Signal[M]{get: get, set: set}
}

// Get returns the current model.
func (s Signal[M]) Get() M {
	return s.get()
}

// Do returns a dispatcher that replaces the model with action(model).
// Nothing happens until the dispatcher is invoked. Panics raised by action
// propagate to the caller.
func (s Signal[M]) Do(action Action[M]) Dispatcher {
	return func() {
		s.set(action(s.get()))
	}
}

// Dispatch applies action immediately. It is shorthand for s.Do(action)().
func (s Signal[M]) Dispatch(action Action[M]) {
	s.set(action(s.get()))
}

// Post runs fn on the signal's loop, or inline when the signal has none.
func (s Signal[M]) Post(fn func()) {
	if s.post == nil {
		fn()
		return
	}
	s.post(fn)
}

// Bind returns a dispatcher that applies fn with a bound argument.
func Bind[M, A any](s Signal[M], fn func(M, A) M, arg A) Dispatcher {
	return func() {
		s.set(fn(s.get(), arg))
	}
}

// Handler returns a function that applies fn with its call-time argument,
// for event handlers that receive a value (an input's text, a tick time).
func Handler[M, E any](s Signal[M], fn func(M, E) M) HandlerFunc[E] {
	return func(e E) {
		s.set(fn(s.get(), e))
	}
}

// BindHandler combines Bind and Handler: fn receives the bound argument
// first and the call-time argument second.
func BindHandler[M, A, E any](s Signal[M], fn func(M, A, E) M, arg A) HandlerFunc[E] {
	return func(e E) {
		s.set(fn(s.get(), arg, e))
	}
}

func (s Signal[M]) observer() Observer {
	if s.obs == nil {
		return NopObserver{}
	}
	return s.obs
}
