package demo

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/elishacook/microfun/pkg/flow"
	"github.com/elishacook/microfun/pkg/flowtest"
	"github.com/elishacook/microfun/pkg/snapshot"
	"github.com/elishacook/microfun/pkg/vdom"
)

func findTag(node *vdom.Node, tag string) *vdom.Node {
	if node == nil {
		return nil
	}
	if node.Kind == vdom.KindElement && node.Tag == tag {
		return node
	}
	for _, c := range node.Children {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestCounter(t *testing.T) {
	h := flowtest.NewHarness(t, Initial(), New(context.Background(), nil).View, nil)
	h.ExpectDraws(1)
	h.ExpectContains(">0</strong>")

	h.Click("+")
	h.Click("+10")
	h.Click("-")
	if !h.Frame() {
		t.Fatal("no frame pending after clicks")
	}
	h.ExpectDraws(2)
	h.ExpectContains(">10</strong>")
	if h.Model().Count != 10 {
		t.Errorf("Count = %d, want 10", h.Model().Count)
	}
}

func TestTodos(t *testing.T) {
	h := flowtest.NewHarness(t, Initial(), New(context.Background(), nil).View, nil)

	add := func(title string) {
		t.Helper()
		input := findTag(h.Recorder().Last(), "input")
		h.Input(input.HID, title)
		h.Frame()
		h.Trigger(findTag(h.Recorder().Last(), "form").HID, "submit", "")
		h.Frame()
	}
	add("milk")
	add("   ")
	add("eggs")

	m := h.Model()
	if diff := cmp.Diff([]string{"t1", "t2"}, m.Order); diff != "" {
		t.Fatalf("Order mismatch (-want +got):\n%s", diff)
	}
	if m.Draft != "" {
		t.Errorf("Draft = %q, want empty after add", m.Draft)
	}
	h.ExpectContains("2 of 2 remaining")

	// Toggle through the item's own signal.
	checkbox := findTag(vdom.FindByHID(h.Recorder().Last(), firstLi(h).HID), "input")
	h.Trigger(checkbox.HID, "change", "")
	h.Frame()

	want := map[string]Todo{"t1": {Title: "milk", Done: true}, "t2": {Title: "eggs"}}
	if diff := cmp.Diff(want, h.Model().Todos); diff != "" {
		t.Errorf("Todos mismatch (-want +got):\n%s", diff)
	}
	h.ExpectContains(`<li class="done"`)
	h.ExpectContains("1 of 2 remaining")

	h.Click("Clear done")
	h.Frame()
	if diff := cmp.Diff([]string{"t2"}, h.Model().Order); diff != "" {
		t.Errorf("Order after clear (-want +got):\n%s", diff)
	}

	h.Click("x")
	h.Frame()
	if len(h.Model().Todos) != 0 || len(h.Model().Order) != 0 {
		t.Errorf("model after remove = %+v", h.Model())
	}
	h.ExpectNotContains("Clear done")
}

func firstLi(h *flowtest.Harness[Model]) *vdom.Node {
	return findTag(h.Recorder().Last(), "li")
}

func TestRemoveTodoUnknown(t *testing.T) {
	m := AddTodo(SetDraft(Initial(), "a"))
	if got := RemoveTodo(m, "nope"); !cmp.Equal(got, m) {
		t.Errorf("RemoveTodo(unknown) changed the model: %+v", got)
	}
}

func TestAddTodoDoesNotAlias(t *testing.T) {
	base := AddTodo(SetDraft(Initial(), "a"))
	first := AddTodo(SetDraft(base, "b"))
	second := AddTodo(SetDraft(base, "c"))

	if first.Order[1] != "t2" || second.Order[1] != "t2" {
		t.Fatalf("orders = %v %v", first.Order, second.Order)
	}
	if first.Todos["t2"].Title != "b" || second.Todos["t2"].Title != "c" {
		t.Errorf("todos share storage: %v %v", first.Todos, second.Todos)
	}
	if len(base.Todos) != 1 {
		t.Errorf("base todos = %v", base.Todos)
	}
}

func TestClockChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := make(chan Model, 4)
	model := Initial()
	s := flow.New(func() Model { return model }, func(m Model) {
		select {
		case ticks <- m:
		default:
		}
	})
	Clock(ctx, 5*time.Millisecond)(s)

	select {
	case m := <-ticks:
		if m.Now.IsZero() {
			t.Error("tick did not set Now")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no tick")
	}
}

func TestChannelsDisabled(t *testing.T) {
	if got := New(context.Background(), nil).Channels(0); got != nil {
		t.Errorf("Channels(0) = %v, want nil", got)
	}
}

type settled struct {
	flow.NopObserver
	errs chan error
}

func (s settled) TaskSettled(err error) { s.errs <- err }

func TestReloadSnapshot(t *testing.T) {
	store, err := snapshot.OpenBolt(filepath.Join(t.TempDir(), "demo.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()
	obs := settled{errs: make(chan error, 1)}
	h := flowtest.NewHarness(t, Initial(), New(ctx, store).View, nil, flow.WithObserver(obs))

	h.Click("Reload snapshot")
	select {
	case err := <-obs.errs:
		if err == nil {
			t.Fatal("reload of empty store succeeded")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reload did not settle")
	}
	if m := h.Model(); m.Status == "" {
		t.Error("failed reload left no status")
	}

	saved := AddTodo(SetDraft(Initial(), "saved"))
	saved.Count = 3
	data, _ := json.Marshal(saved)
	if _, err := store.Append(ctx, data); err != nil {
		t.Fatal(err)
	}

	h.Click("Reload snapshot")
	select {
	case err := <-obs.errs:
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reload did not settle")
	}
	m := h.Model()
	if m.Count != 3 || m.Todos["t1"].Title != "saved" || m.Status != "Restored snapshot." {
		t.Errorf("model after reload = %+v", m)
	}
	h.Frame()
	h.ExpectContains("saved")
}
