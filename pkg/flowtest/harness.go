package flowtest

import (
	"strings"
	"testing"

	"github.com/elishacook/microfun/pkg/flow"
	"github.com/elishacook/microfun/pkg/frame"
	"github.com/elishacook/microfun/pkg/vdom"
)

// Harness is a mounted app driven by hand.
type Harness[M any] struct {
	t        testing.TB
	app      *flow.App[M]
	clock    *frame.Manual
	recorder *Recorder
}

// NewHarness mounts view with initial on a manual clock and a Recorder.
// Extra options are applied after the harness's own, so an observer or
// logger can be added.
func NewHarness[M any](t testing.TB, initial M, view flow.View[M], channels []flow.Channel[M], opts ...flow.Option) *Harness[M] {
	t.Helper()
	h := &Harness[M]{
		t:        t,
		clock:    frame.NewManual(),
		recorder: NewRecorder(),
	}
	opts = append([]flow.Option{flow.WithClock(h.clock)}, opts...)
	h.app = flow.Mount(h.recorder, initial, view, channels, opts...)
	return h
}

// App returns the mounted app.
func (h *Harness[M]) App() *flow.App[M] { return h.app }

// Signal returns the root signal.
func (h *Harness[M]) Signal() flow.Signal[M] { return h.app.Signal() }

// Model returns the committed model.
func (h *Harness[M]) Model() M { return h.app.Model() }

// Clock returns the manual clock.
func (h *Harness[M]) Clock() *frame.Manual { return h.clock }

// Recorder returns the recording target.
func (h *Harness[M]) Recorder() *Recorder { return h.recorder }

// Frame advances the clock by one frame and reports whether anything ran.
func (h *Harness[M]) Frame() bool {
	return h.clock.Advance() > 0
}

// Trigger invokes the handler for event on the element with hid in the
// last drawn tree.
func (h *Harness[M]) Trigger(hid, event, value string) {
	h.t.Helper()
	node := vdom.FindByHID(h.recorder.Last(), hid)
	if node == nil {
		h.t.Fatalf("no element %s in the last draw", hid)
	}
	h.call(node, event, value)
}

// Click clicks the first element in the last draw whose text is label.
func (h *Harness[M]) Click(label string) {
	h.t.Helper()
	node := findByText(h.recorder.Last(), label, "click")
	if node == nil {
		h.t.Fatalf("no clickable element %q in the last draw:\n%s", label, h.recorder.HTML())
	}
	h.call(node, "click", "")
}

// Input sends an input event with value to the element with hid.
func (h *Harness[M]) Input(hid, value string) {
	h.t.Helper()
	h.Trigger(hid, "input", value)
}

func (h *Harness[M]) call(node *vdom.Node, event, value string) {
	h.t.Helper()
	handler, ok := node.Handlers()[event]
	if !ok {
		h.t.Fatalf("element %s has no %s handler", node.HID, event)
	}
	if err := vdom.CallHandler(handler, value); err != nil {
		h.t.Fatalf("calling %s handler on %s: %v", event, node.HID, err)
	}
}

// ExpectDraws fails the test unless exactly n trees were drawn.
func (h *Harness[M]) ExpectDraws(n int) {
	h.t.Helper()
	if got := h.recorder.Draws(); got != n {
		h.t.Errorf("expected %d draws, got %d", n, got)
	}
}

// ExpectContains asserts that the last draw's HTML contains s.
func (h *Harness[M]) ExpectContains(s string) {
	h.t.Helper()
	if html := h.recorder.HTML(); !strings.Contains(html, s) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", s, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the last draw's HTML does not contain s.
func (h *Harness[M]) ExpectNotContains(s string) {
	h.t.Helper()
	if html := h.recorder.HTML(); strings.Contains(html, s) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", s, truncate(html, 500))
	}
}

// findByText finds an element with a handler for event whose concatenated
// text content equals text.
func findByText(node *vdom.Node, text, event string) *vdom.Node {
	if node == nil {
		return nil
	}
	if node.Kind == vdom.KindElement {
		if _, ok := node.Handlers()[event]; ok && textContent(node) == text {
			return node
		}
	}
	for _, child := range node.Children {
		if found := findByText(child, text, event); found != nil {
			return found
		}
	}
	return nil
}

func textContent(node *vdom.Node) string {
	if node.Kind == vdom.KindText {
		return node.Text
	}
	var b strings.Builder
	for _, child := range node.Children {
		b.WriteString(textContent(child))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
