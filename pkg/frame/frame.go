// Package frame provides frame clocks: the "run this once before the next
// paint" primitive a render scheduler defers its flush to.
//
// A Clock only promises to call each requested callback exactly once, at
// some later frame boundary. Callbacks requested while a frame is running
// land in the following frame.
package frame

import (
	"sync"
	"time"
)

// Clock schedules callbacks for the next frame.
type Clock interface {
	Request(fn func())
}

// Func adapts an ordinary function to the Clock interface.
type Func func(fn func())

// Request calls f(fn).
func (f Func) Request(fn func()) { f(fn) }

// Immediate runs callbacks synchronously inside Request. Every request is
// its own frame, so nothing is ever coalesced by the clock itself.
type Immediate struct{}

// Request runs fn.
func (Immediate) Request(fn func()) { fn() }

// queue is the callback list shared by Manual and Interval.
type queue struct {
	mu  sync.Mutex
	fns []func()
}

// push appends fn and reports whether the queue was empty.
func (q *queue) push(fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.fns = append(q.fns, fn)
	return len(q.fns) == 1
}

func (q *queue) take() []func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	fns := q.fns
	q.fns = nil
	return fns
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns)
}

// Manual is a clock advanced by hand. Tests use it to decide exactly when
// a frame happens.
type Manual struct {
	q      queue
	frames int
}

// NewManual returns a Manual clock with nothing pending.
func NewManual() *Manual {
	return &Manual{}
}

// Request queues fn for the next Advance.
func (m *Manual) Request(fn func()) {
	if fn == nil {
		return
	}
	m.q.push(fn)
}

// Pending returns the number of callbacks waiting for the next frame.
func (m *Manual) Pending() int {
	return m.q.len()
}

// Frames returns how many times Advance ran at least one callback.
func (m *Manual) Frames() int {
	m.q.mu.Lock()
	defer m.q.mu.Unlock()
	return m.frames
}

// Advance runs one frame: every callback queued before the call, in request
// order. It returns the number of callbacks run.
func (m *Manual) Advance() int {
	fns := m.q.take()
	if len(fns) == 0 {
		return 0
	}
	m.q.mu.Lock()
	m.frames++
	m.q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Interval fires frames on a fixed period, but only while there is work:
// the first request after an idle period arms a timer, and the frame runs
// every callback queued by then. Callbacks run on the timer's goroutine.
type Interval struct {
	period time.Duration

	q       queue
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// DefaultInterval is roughly one 60 Hz display frame.
const DefaultInterval = 16 * time.Millisecond

// NewInterval returns a clock with the given frame period. A non-positive
// period uses DefaultInterval.
func NewInterval(period time.Duration) *Interval {
	if period <= 0 {
		period = DefaultInterval
	}
	return &Interval{period: period}
}

// Period returns the frame period.
func (c *Interval) Period() time.Duration {
	return c.period
}

// Request queues fn for the next frame. Requests after Stop are dropped.
func (c *Interval) Request(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	if c.q.push(fn) {
		c.timer = time.AfterFunc(c.period, c.fire)
	}
}

func (c *Interval) fire() {
	c.mu.Lock()
	c.timer = nil
	stopped := c.stopped
	c.mu.Unlock()
	if stopped {
		return
	}
	for _, fn := range c.q.take() {
		fn()
	}
}

// Stop cancels the pending frame. Queued callbacks are discarded.
func (c *Interval) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.q.take()
}
