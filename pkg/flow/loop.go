package flow

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
)

// DefaultQueueSize is the Loop queue capacity when LoopConfig leaves it 0.
const DefaultQueueSize = 1024

// LoopConfig configures a Loop.
type LoopConfig struct {
	// QueueSize is the number of posted functions that can wait. Post fails
	// with ErrQueueFull beyond it.
	QueueSize int

	// Logger receives queue and panic reports.
	Logger *slog.Logger

	// OnPanic, if set, is called with the recovered value and stack when a
	// posted function panics, and the loop keeps running. When nil, panics
	// propagate out of Run.
	OnPanic func(recovered any, stack []byte)
}

// Loop runs posted functions one at a time on the goroutine that calls
// Run. It is the single owner of a mounted model.
type Loop struct {
	queue   chan func()
	done    chan struct{}
	once    sync.Once
	logger  *slog.Logger
	onPanic func(any, []byte)
}

// NewLoop creates a loop. Call Run to start processing.
func NewLoop(config LoopConfig) *Loop {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}
	if config.Logger == nil {
		config.Logger = slog.Default().With("component", "loop")
	}
	return &Loop{
		queue:   make(chan func(), config.QueueSize),
		done:    make(chan struct{}),
		logger:  config.Logger,
		onPanic: config.OnPanic,
	}
}

// Post queues fn without blocking. It may be called from any goroutine,
// including the loop itself.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	default:
		l.logger.Warn("dispatch queue full, discarding callback", "capacity", cap(l.queue))
		return ErrQueueFull
	}
}

// Call posts fn and waits until it has run or ctx is done. It must not be
// called from the loop goroutine.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	if err := l.Post(func() {
		defer close(ran)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-ran:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes posted functions until ctx is done or Close is called.
// It returns ctx.Err() or nil after Close. Functions still queued are
// dropped.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.queue:
			l.execute(fn)
		case <-l.done:
			return nil
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		}
	}
}

func (l *Loop) execute(fn func()) {
	if l.onPanic != nil {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				l.logger.Error("dispatch panic", "panic", r, "stack", string(stack))
				l.onPanic(r, stack)
			}
		}()
	}
	fn()
}

// Close stops the loop. It is safe to call more than once.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
