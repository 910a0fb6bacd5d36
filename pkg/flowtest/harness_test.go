package flowtest

import (
	"errors"
	"testing"

	"github.com/elishacook/microfun/pkg/flow"
	"github.com/elishacook/microfun/pkg/vdom"
)

type counter struct {
	Count int
	Name  string
}

func counterView(m counter, s flow.Signal[counter]) *vdom.Node {
	return vdom.Div(
		vdom.P(vdom.Textf("Count: %d", m.Count)),
		vdom.Button(vdom.OnClick(s.Do(func(m counter) counter { m.Count++; return m })), "+"),
		vdom.Input(vdom.OnInput(flow.Handler(s, func(m counter, v string) counter { m.Name = v; return m }))),
	)
}

func TestHarnessClickAndFrame(t *testing.T) {
	h := NewHarness(t, counter{}, counterView, nil)
	h.ExpectDraws(1)
	h.ExpectContains("Count: 0")

	h.Click("+")
	h.Click("+")
	h.ExpectDraws(1)

	if !h.Frame() {
		t.Fatal("Frame() ran nothing")
	}
	h.ExpectDraws(2)
	h.ExpectContains("Count: 2")
	h.ExpectNotContains("Count: 1")

	if h.Frame() {
		t.Error("an idle frame should run nothing")
	}
}

func TestHarnessInput(t *testing.T) {
	h := NewHarness(t, counter{}, counterView, nil)

	// div h1, p h2, button h3, input h4
	h.Input("h4", "ada")
	if h.Model().Name != "ada" {
		t.Errorf("Name = %q, want ada", h.Model().Name)
	}
}

func TestRecorderFail(t *testing.T) {
	r := NewRecorder()
	boom := errors.New("boom")
	r.Fail(boom)
	if err := r.Render(vdom.Div()); !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, want boom", err)
	}
	r.Fail(nil)
	if err := r.Render(vdom.Div()); err != nil {
		t.Errorf("Render() error = %v", err)
	}
	if r.Draws() != 1 || r.Last().HID != "h1" {
		t.Errorf("Draws() = %d, Last().HID = %q", r.Draws(), r.Last().HID)
	}
}
