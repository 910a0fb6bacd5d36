package flow

import (
	"context"
	"errors"
	"sync"
)

// Thenable is a value that settles later with either a result or an error.
// Callbacks registered after settlement run immediately.
type Thenable[R any] interface {
	Then(func(R))
	Catch(func(error))
}

var errNilRejection = errors.New("flow: future rejected with nil error")

// Future is the package's Thenable. It settles at most once; later Resolve
// and Reject calls are ignored.
type Future[R any] struct {
	mu      sync.Mutex
	settled bool
	result  R
	err     error
	thens   []func(R)
	catches []func(error)
	done    chan struct{}
}

// NewFuture returns an unsettled future.
func NewFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// Resolved returns a future already settled with v.
func Resolved[R any](v R) *Future[R] {
	f := NewFuture[R]()
	f.Resolve(v)
	return f
}

// Rejected returns a future already settled with err.
func Rejected[R any](err error) *Future[R] {
	f := NewFuture[R]()
	f.Reject(err)
	return f
}

// Go runs fn on a new goroutine and returns a future settled with its
// outcome.
func Go[R any](ctx context.Context, fn func(context.Context) (R, error)) *Future[R] {
	f := NewFuture[R]()
	go func() {
		v, err := fn(ctx)
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(v)
	}()
	return f
}

// Resolve settles the future with v.
func (f *Future[R]) Resolve(v R) {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return
	}
	f.settled = true
	f.result = v
	thens := f.thens
	f.thens, f.catches = nil, nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range thens {
		fn(v)
	}
}

// Reject settles the future with err. A nil err is replaced by a generic
// error so that rejection is never mistaken for success.
func (f *Future[R]) Reject(err error) {
	if err == nil {
		err = errNilRejection
	}
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return
	}
	f.settled = true
	f.err = err
	catches := f.catches
	f.thens, f.catches = nil, nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range catches {
		fn(err)
	}
}

// Then registers fn to run with the result on success.
func (f *Future[R]) Then(fn func(R)) {
	f.mu.Lock()
	if !f.settled {
		f.thens = append(f.thens, fn)
		f.mu.Unlock()
		return
	}
	v, err := f.result, f.err
	f.mu.Unlock()
	if err == nil {
		fn(v)
	}
}

// Catch registers fn to run with the error on failure.
func (f *Future[R]) Catch(fn func(error)) {
	f.mu.Lock()
	if !f.settled {
		f.catches = append(f.catches, fn)
		f.mu.Unlock()
		return
	}
	err := f.err
	f.mu.Unlock()
	if err != nil {
		fn(err)
	}
}

// Done is closed once the future settles.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future settles or ctx is done.
func (f *Future[R]) Await(ctx context.Context) (R, error) {
	select {
	case <-f.done:
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.result, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}
