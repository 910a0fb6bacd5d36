package vdom

import "testing"

func TestAssignHIDsNumbersElementsDepthFirst(t *testing.T) {
	tree := Div(
		Span(Text("a")),
		Button(OnClick(func() {})),
	)
	AssignHIDs(tree, NewHIDGenerator())

	if tree.HID != "h1" || tree.Children[0].HID != "h2" || tree.Children[1].HID != "h3" {
		t.Errorf("HIDs = %q %q %q, want h1 h2 h3",
			tree.HID, tree.Children[0].HID, tree.Children[1].HID)
	}
	if tree.Children[0].Children[0].HID != "" {
		t.Error("text nodes should not get a HID")
	}
}

func TestCollectHandlers(t *testing.T) {
	tree := Div(
		Button(OnClick(func() {})),
		Input(OnInput(func(string) {}), OnKeyDown(func(string) {})),
		P(Text("static")),
	)
	AssignHIDs(tree, NewHIDGenerator())

	got := CollectHandlers(tree)
	if len(got) != 2 {
		t.Fatalf("len(CollectHandlers) = %d, want 2", len(got))
	}
	if _, ok := got["h2"]["click"]; !ok {
		t.Error("missing h2 click")
	}
	if len(got["h3"]) != 2 {
		t.Errorf("h3 handlers = %v, want input and keydown", got["h3"])
	}
	if EventNames(tree.Children[1]) != "input keydown" {
		t.Errorf("EventNames = %q", EventNames(tree.Children[1]))
	}
}

func TestFindByHID(t *testing.T) {
	tree := Div(Ul(Li(), Li()))
	AssignHIDs(tree, NewHIDGenerator())

	if n := FindByHID(tree, "h4"); n == nil || n.Tag != "li" {
		t.Errorf("FindByHID(h4) = %+v", n)
	}
	if FindByHID(tree, "h9") != nil {
		t.Error("FindByHID should return nil for unknown HIDs")
	}
}

func TestHIDGeneratorReset(t *testing.T) {
	gen := NewHIDGenerator()
	gen.Next()
	gen.Reset()
	if got := gen.Next(); got != "h1" {
		t.Errorf("Next() after Reset = %q, want h1", got)
	}
}
