package vdom

import "testing"

// numbered assigns HIDs to tree with a fresh generator and returns the
// generator so further diffs continue the sequence.
func numbered(tree *Node) *HIDGenerator {
	gen := NewHIDGenerator()
	AssignHIDs(tree, gen)
	return gen
}

func TestDiffNilPrevReplacesRoot(t *testing.T) {
	next := Div(Span())
	patches := Diff(nil, next, NewHIDGenerator())

	if len(patches) != 1 || patches[0].Op != PatchReplaceNode {
		t.Fatalf("patches = %+v, want one ReplaceNode", patches)
	}
	if next.HID != "h1" || next.Children[0].HID != "h2" {
		t.Errorf("new tree should be numbered, got %q %q", next.HID, next.Children[0].HID)
	}
}

func TestDiffIdenticalTreesProduceNothing(t *testing.T) {
	prev := Div(Class("a"), P(Text("x")))
	gen := numbered(prev)
	next := Div(Class("a"), P(Text("x")))

	if patches := Diff(prev, next, gen); len(patches) != 0 {
		t.Errorf("patches = %+v, want none", patches)
	}
	if next.HID != prev.HID || next.Children[0].HID != prev.Children[0].HID {
		t.Error("HIDs should carry over to the next tree")
	}
}

func TestDiffLoneTextChange(t *testing.T) {
	prev := Div(Span(Text("1")))
	gen := numbered(prev)
	next := Div(Span(Text("2")))

	patches := Diff(prev, next, gen)
	if len(patches) != 1 {
		t.Fatalf("patches = %+v, want 1", patches)
	}
	p := patches[0]
	if p.Op != PatchSetText || p.HID != "h2" || p.Value != "2" {
		t.Errorf("patch = %+v, want SetText h2 2", p)
	}
}

func TestDiffMixedTextReplacesParent(t *testing.T) {
	prev := P(Text("count: "), Strong(Text("1")))
	gen := numbered(prev)
	next := P(Text("total: "), Strong(Text("1")))

	patches := Diff(prev, next, gen)
	if len(patches) != 1 || patches[0].Op != PatchReplaceNode || patches[0].HID != "h1" {
		t.Fatalf("patches = %+v, want ReplaceNode h1", patches)
	}
	if next.HID != "h1" {
		t.Errorf("replaced parent should keep its HID, got %q", next.HID)
	}
	if next.Children[1].HID != "h3" {
		t.Errorf("replaced subtree should be renumbered, got %q", next.Children[1].HID)
	}
}

func TestDiffAttributes(t *testing.T) {
	prev := Input(Type("text"), Value("a"), Disabled(true))
	gen := numbered(prev)
	next := Input(Type("text"), Value("b"), Placeholder("name"))

	got := map[PatchOp]map[string]string{}
	for _, p := range Diff(prev, next, gen) {
		if got[p.Op] == nil {
			got[p.Op] = map[string]string{}
		}
		got[p.Op][p.Key] = p.Value
	}

	if got[PatchSetAttr]["value"] != "b" {
		t.Errorf("value patch = %v", got[PatchSetAttr])
	}
	if got[PatchSetAttr]["placeholder"] != "name" {
		t.Errorf("placeholder patch = %v", got[PatchSetAttr])
	}
	if _, ok := got[PatchRemoveAttr]["disabled"]; !ok {
		t.Errorf("missing RemoveAttr disabled: %v", got)
	}
	if _, ok := got[PatchSetAttr]["type"]; ok {
		t.Error("unchanged attribute should not be patched")
	}
}

func TestDiffEventNames(t *testing.T) {
	prev := Button(OnClick(func() {}))
	gen := numbered(prev)

	same := Button(OnClick(func() {}))
	if patches := Diff(prev, same, gen); len(patches) != 0 {
		t.Errorf("new closure for the same event should not patch, got %+v", patches)
	}

	more := Button(OnClick(func() {}), OnDblClick(func() {}))
	patches := Diff(same, more, gen)
	if len(patches) != 1 || patches[0].Op != PatchSetEvents || patches[0].Value != "click dblclick" {
		t.Errorf("patches = %+v, want SetEvents click dblclick", patches)
	}
}

func TestDiffChildrenInsertAndRemove(t *testing.T) {
	prev := Ul(Li(Key("a")), Li(Key("b")), Li(Key("c")))
	gen := numbered(prev)

	shorter := Ul(Li(Key("a")))
	patches := Diff(prev, shorter, gen)
	if len(patches) != 2 {
		t.Fatalf("patches = %+v, want 2 removals", patches)
	}
	if patches[0].Op != PatchRemoveNode || patches[0].HID != "h4" || patches[1].HID != "h3" {
		t.Errorf("removals should run from the end, got %+v", patches)
	}

	longer := Ul(Li(Key("a")), Li(Key("d")))
	patches = Diff(shorter, longer, gen)
	if len(patches) != 1 || patches[0].Op != PatchInsertNode {
		t.Fatalf("patches = %+v, want one InsertNode", patches)
	}
	if patches[0].ParentID != "h1" || patches[0].Index != 1 || patches[0].Node.HID != "h5" {
		t.Errorf("insert = %+v", patches[0])
	}
}

func TestDiffKeyChangeReplacesChild(t *testing.T) {
	prev := Ul(Li(Key("a")), Li(Key("b")))
	gen := numbered(prev)
	next := Ul(Li(Key("b")))

	patches := Diff(prev, next, gen)
	if len(patches) != 2 {
		t.Fatalf("patches = %+v, want replace + remove", patches)
	}
	if patches[0].Op != PatchReplaceNode || patches[0].HID != "h2" {
		t.Errorf("first patch = %+v, want ReplaceNode h2", patches[0])
	}
	if patches[1].Op != PatchRemoveNode || patches[1].HID != "h3" {
		t.Errorf("second patch = %+v, want RemoveNode h3", patches[1])
	}
}

func TestDiffFragmentsAreFlattened(t *testing.T) {
	prev := Div(Fragment(Span(), Span()))
	gen := numbered(prev)
	next := Div(Span(), Fragment(Span(), Span()))

	patches := Diff(prev, next, gen)
	if len(patches) != 1 || patches[0].Op != PatchInsertNode || patches[0].Index != 2 {
		t.Errorf("patches = %+v, want a single insert at 2", patches)
	}
}

func TestDiffRootTagChange(t *testing.T) {
	prev := Div()
	gen := numbered(prev)
	patches := Diff(prev, Section(), gen)
	if len(patches) != 1 || patches[0].Op != PatchReplaceNode || patches[0].HID != "h1" {
		t.Errorf("patches = %+v, want ReplaceNode h1", patches)
	}
}

func TestPropString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "true"},
		{42, "42"},
		{int64(7), "7"},
		{1.5, "1.5"},
	}
	for _, tt := range tests {
		if got := PropString(tt.in); got != tt.want {
			t.Errorf("PropString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
