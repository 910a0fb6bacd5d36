package flow

import (
	"reflect"
	"sync"
)

// Callback receives the outcome of a command. A non-nil err means failure.
type Callback[R any] func(result R, err error)

// Command starts asynchronous work. It either reports through done and
// returns nil, or returns a Thenable, in which case done is ignored.
type Command[R any] func(done Callback[R]) Thenable[R]

// TaskBridge runs a command and turns its outcome into a dispatch on a
// signal: succeed on success, fail on error, then the optional observer.
//
// There is no cancellation. A command that completes after the model has
// moved on still dispatches against the then-current model.
type TaskBridge[M, R any] struct {
	signal  Signal[M]
	cmd     Command[R]
	succeed func(M, R) M
	fail    func(M, error) M
	observe Callback[R]
}

// NewTask returns a bridge for cmd. succeed, fail and observe may be nil.
func NewTask[M, R any](s Signal[M], cmd Command[R], succeed func(M, R) M, fail func(M, error) M, observe Callback[R]) *TaskBridge[M, R] {
	return &TaskBridge[M, R]{
		signal:  s,
		cmd:     cmd,
		succeed: succeed,
		fail:    fail,
		observe: observe,
	}
}

// Task returns a dispatcher that starts the command each time it is
// invoked. It panics with ErrInvalidCommandResult if the command returns an
// unusable thenable.
func Task[M, R any](s Signal[M], cmd Command[R], succeed func(M, R) M, fail func(M, error) M, observe Callback[R]) Dispatcher {
	t := NewTask(s, cmd, succeed, fail, observe)
	return func() {
		if err := t.Start(); err != nil {
			panic(err)
		}
	}
}

// Start runs the command once. It returns ErrInvalidCommandResult when the
// command returns a non-nil Thenable holding a nil pointer; nothing is
// dispatched in that case.
func (t *TaskBridge[M, R]) Start() error {
	run := &taskRun[M, R]{bridge: t}
	th := t.cmd(run.done)
	if th != nil && isNil(th) {
		run.settle(modeInvalid)
		return invalidCommandResult(th)
	}
	if th == nil {
		run.settle(modeCallback)
		return nil
	}
	run.settle(modeFuture)
	th.Then(func(r R) { t.complete(r, nil) })
	th.Catch(func(err error) {
		var zero R
		t.complete(zero, err)
	})
	return nil
}

// complete posts the dispatch for one outcome onto the signal's loop.
func (t *TaskBridge[M, R]) complete(result R, err error) {
	t.signal.Post(func() {
		if err != nil {
			if t.fail != nil {
				t.signal.Dispatch(func(m M) M { return t.fail(m, err) })
			}
		} else if t.succeed != nil {
			t.signal.Dispatch(func(m M) M { return t.succeed(m, result) })
		}
		if t.observe != nil {
			t.observe(result, err)
		}
		t.signal.observer().TaskSettled(err)
	})
}

type runMode int

const (
	modeStarting runMode = iota
	modeCallback
	modeFuture
	modeInvalid
)

// taskRun tracks one Start. done may be called before the command returns;
// those calls are held until the command's return value decides the mode.
type taskRun[M, R any] struct {
	bridge *TaskBridge[M, R]

	mu      sync.Mutex
	mode    runMode
	pending []outcome[R]
}

type outcome[R any] struct {
	result R
	err    error
}

func (r *taskRun[M, R]) done(result R, err error) {
	r.mu.Lock()
	switch r.mode {
	case modeStarting:
		r.pending = append(r.pending, outcome[R]{result, err})
		r.mu.Unlock()
	case modeCallback:
		r.mu.Unlock()
		r.bridge.complete(result, err)
	default:
		r.mu.Unlock()
	}
}

func (r *taskRun[M, R]) settle(mode runMode) {
	r.mu.Lock()
	r.mode = mode
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	if mode != modeCallback {
		return
	}
	for _, o := range pending {
		r.bridge.complete(o.result, o.err)
	}
}

// isNil reports whether v is an interface holding a nil pointer-like value.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
