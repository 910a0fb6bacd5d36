package vdom

import (
	"fmt"
	"reflect"
	"strconv"
)

// Diff compares two trees and returns the patches that transform prev into
// next. HIDs are copied from prev to the matching nodes of next; elements
// that are new in next get fresh HIDs from gen. A nil prev, or a root whose
// tag or key changed, yields a single ReplaceNode patch for the root.
func Diff(prev, next *Node, gen *HIDGenerator) []Patch {
	d := &differ{gen: gen}
	if next == nil {
		if prev != nil && prev.HID != "" {
			d.add(Patch{Op: PatchRemoveNode, HID: prev.HID})
		}
		return d.patches
	}
	if prev == nil || !sameElement(prev, next) {
		d.replace(prev, next)
		return d.patches
	}
	d.element(prev, next)
	return d.patches
}

type differ struct {
	gen     *HIDGenerator
	patches []Patch
}

func (d *differ) add(p Patch) {
	d.patches = append(d.patches, p)
}

// replace emits a ReplaceNode for prev and numbers the new subtree.
func (d *differ) replace(prev, next *Node) {
	AssignHIDs(next, d.gen)
	hid := ""
	if prev != nil {
		hid = prev.HID
	}
	d.add(Patch{Op: PatchReplaceNode, HID: hid, Node: next})
}

// element diffs two elements with the same tag and key.
func (d *differ) element(prev, next *Node) {
	next.HID = prev.HID
	d.props(prev, next)
	if names := EventNames(next); names != EventNames(prev) {
		d.add(Patch{Op: PatchSetEvents, HID: prev.HID, Value: names})
	}
	d.children(prev, next)
}

func (d *differ) props(prev, next *Node) {
	for key, prevVal := range prev.Props {
		if IsEventKey(key) {
			continue
		}
		nextVal, ok := next.Props[key]
		if !ok {
			d.add(Patch{Op: PatchRemoveAttr, HID: prev.HID, Key: key})
			continue
		}
		if !propsEqual(prevVal, nextVal) {
			d.add(Patch{Op: PatchSetAttr, HID: prev.HID, Key: key, Value: PropString(nextVal)})
		}
	}
	for key, nextVal := range next.Props {
		if IsEventKey(key) {
			continue
		}
		if _, ok := prev.Props[key]; !ok {
			d.add(Patch{Op: PatchSetAttr, HID: prev.HID, Key: key, Value: PropString(nextVal)})
		}
	}
}

// children matches children by position. Text and raw children have no
// HID, so any change that cannot be expressed as SetText on a lone text
// child replaces the parent.
func (d *differ) children(prev, next *Node) {
	pc, nc := flatten(prev.Children), flatten(next.Children)
	if needsParentReplace(pc, nc) {
		// The parent keeps its HID; only its subtree is renumbered.
		next.HID = prev.HID
		for _, c := range next.Children {
			AssignHIDs(c, d.gen)
		}
		d.add(Patch{Op: PatchReplaceNode, HID: prev.HID, Node: next})
		return
	}

	n := min(len(pc), len(nc))
	for i := 0; i < n; i++ {
		p, c := pc[i], nc[i]
		switch {
		case p.Kind != KindElement:
			if p.Text != c.Text {
				d.add(Patch{Op: PatchSetText, HID: prev.HID, Value: c.Text})
			}
		case sameElement(p, c):
			d.element(p, c)
		default:
			d.replace(p, c)
		}
	}
	for i := len(pc) - 1; i >= n; i-- {
		d.add(Patch{Op: PatchRemoveNode, HID: pc[i].HID})
	}
	for i := n; i < len(nc); i++ {
		AssignHIDs(nc[i], d.gen)
		d.add(Patch{Op: PatchInsertNode, ParentID: prev.HID, Index: i, Node: nc[i]})
	}
}

func needsParentReplace(pc, nc []*Node) bool {
	n := min(len(pc), len(nc))
	for i := 0; i < n; i++ {
		p, c := pc[i], nc[i]
		if p.Kind == KindElement && c.Kind == KindElement {
			continue
		}
		if p.Kind != c.Kind {
			return true
		}
		if p.Text == c.Text {
			continue
		}
		// Only a lone text child can be patched in place.
		if p.Kind != KindText || len(pc) != 1 || len(nc) != 1 {
			return true
		}
	}
	for _, extra := range pc[n:] {
		if extra.Kind != KindElement {
			return true
		}
	}
	for _, extra := range nc[n:] {
		if extra.Kind != KindElement {
			return true
		}
	}
	return false
}

func sameElement(a, b *Node) bool {
	return a.Kind == KindElement && b.Kind == KindElement &&
		a.Tag == b.Tag && a.Key == b.Key
}

// flatten inlines fragment children.
func flatten(children []*Node) []*Node {
	hasFragment := false
	for _, c := range children {
		if c.Kind == KindFragment {
			hasFragment = true
			break
		}
	}
	if !hasFragment {
		return children
	}
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		if c.Kind == KindFragment {
			out = append(out, flatten(c.Children)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return reflect.DeepEqual(a, b)
}

// PropString converts a prop value to its attribute string.
func PropString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
