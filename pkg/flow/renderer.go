package flow

import (
	"log/slog"
	"sync"
	"time"

	"github.com/elishacook/microfun/pkg/frame"
	"github.com/elishacook/microfun/pkg/vdom"
)

// View renders a model. The signal lets the view build dispatchers for the
// event handlers it attaches.
type View[M any] func(M, Signal[M]) *vdom.Node

// Target draws a whole tree. Implementations decide how: serialize it, diff
// it against the previous draw, record it.
type Target interface {
	Render(tree *vdom.Node) error
}

// TargetFunc adapts a function to the Target interface.
type TargetFunc func(tree *vdom.Node) error

// Render calls f(tree).
func (f TargetFunc) Render(tree *vdom.Node) error { return f(tree) }

// RenderState is the scheduler state.
type RenderState int

const (
	// Idle means no frame is requested.
	Idle RenderState = iota
	// Pending means a frame is requested and will draw the latest model.
	Pending
)

// String returns the state name.
func (s RenderState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Renderer batches render requests into frames. Any number of Render calls
// between two frames produce one draw of the most recent model.
type Renderer[M any] struct {
	target Target
	signal Signal[M]
	clock  frame.Clock
	logger *slog.Logger

	mu    sync.Mutex
	state RenderState
	model M
	view  View[M]
}

// NewRenderer returns an idle renderer that draws to target. The signal is
// passed to the view on every draw.
func NewRenderer[M any](target Target, s Signal[M], clock frame.Clock) *Renderer[M] {
	return &Renderer[M]{
		target: target,
		signal: s,
		clock:  clock,
		logger: slog.Default().With("component", "renderer"),
	}
}

// State returns the current scheduler state.
func (r *Renderer[M]) State() RenderState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Render records model and view as the pair to draw next. The first call
// after a frame requests a new one from the clock; later calls only replace
// the pair.
func (r *Renderer[M]) Render(model M, view View[M]) {
	r.mu.Lock()
	r.model, r.view = model, view
	if r.state == Pending {
		r.mu.Unlock()
		r.signal.observer().Coalesced()
		return
	}
	r.state = Pending
	r.mu.Unlock()

	r.clock.Request(r.onFrame)
}

// onFrame runs on the clock. The flush itself is posted so that it happens
// on the signal's loop.
func (r *Renderer[M]) onFrame() {
	r.signal.Post(func() {
		_ = r.Flush()
	})
}

// Flush draws the recorded pair if a frame is pending and returns the
// target's error, wrapped in ErrRenderTarget. It is a no-op when idle, so a
// forced flush and the clock's own callback never draw twice.
func (r *Renderer[M]) Flush() error {
	r.mu.Lock()
	if r.state != Pending {
		r.mu.Unlock()
		return nil
	}
	r.state = Idle
	model, view := r.model, r.view
	r.mu.Unlock()

	return r.draw(model, view)
}

// Draw records the pair and draws it immediately, bypassing the clock. Any
// pending frame is satisfied by this draw.
func (r *Renderer[M]) Draw(model M, view View[M]) error {
	r.mu.Lock()
	r.state = Idle
	r.model, r.view = model, view
	r.mu.Unlock()

	return r.draw(model, view)
}

func (r *Renderer[M]) draw(model M, view View[M]) error {
	start := time.Now()
	err := r.target.Render(view(model, r.signal))
	if err != nil {
		err = renderTargetError(err)
		r.logger.Error("render failed", "error", err)
	}
	r.signal.observer().Flushed(time.Since(start), err)
	return err
}
