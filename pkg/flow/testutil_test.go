package flow

import (
	"sync"
	"testing"
	"time"

	"github.com/elishacook/microfun/pkg/vdom"
)

// cell is a plain model holder for signals built with New.
type cell[M any] struct{ v M }

func (c *cell[M]) signal() Signal[M] {
	return New(func() M { return c.v }, func(m M) { c.v = m })
}

// recorder is a Target that keeps every tree it draws.
type recorder struct {
	mu    sync.Mutex
	trees []*vdom.Node
	err   error
}

func (r *recorder) Render(tree *vdom.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.trees = append(r.trees, tree)
	return nil
}

func (r *recorder) draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trees)
}

// text returns the text of the last drawn tree's first child.
func (r *recorder) text(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.trees) == 0 {
		t.Fatal("nothing drawn")
	}
	last := r.trees[len(r.trees)-1]
	if len(last.Children) == 0 {
		t.Fatal("drawn tree has no children")
	}
	return last.Children[0].Text
}

// countingObserver counts every notification.
type countingObserver struct {
	mu         sync.Mutex
	dispatched int
	committed  []any
	coalesced  int
	flushed    []error
	settled    []error
}

func (o *countingObserver) Dispatched() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dispatched++
}

func (o *countingObserver) Committed(m any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.committed = append(o.committed, m)
}

func (o *countingObserver) Coalesced() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.coalesced++
}

func (o *countingObserver) Flushed(_ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.flushed = append(o.flushed, err)
}

func (o *countingObserver) TaskSettled(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.settled = append(o.settled, err)
}

func countView(m int, _ Signal[int]) *vdom.Node {
	return vdom.Div(vdom.Textf("%d", m))
}
