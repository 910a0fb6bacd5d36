package vdom

import (
	"fmt"
	"strings"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
	KindFragment             // Grouping without wrapper
	KindRaw                  // Raw HTML
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Node is a virtual DOM node.
type Node struct {
	Kind     Kind    // Node type
	Tag      string  // Element tag name (e.g., "div")
	Props    Props   // Attributes and event handlers
	Children []*Node // Child nodes
	Key      string  // Reconciliation key
	Text     string  // For KindText and KindRaw
	HID      string  // Hydration ID, assigned by AssignHIDs or Diff
}

// Props holds attributes and event handlers. Event handlers are stored
// under "on"+event name ("onclick").
type Props map[string]any

// Attr is a single attribute.
type Attr struct {
	Key   string
	Value any
}

// EventHandler binds a handler to an event name ("onclick").
type EventHandler struct {
	Event   string
	Handler any
}

// Handlers returns the event handlers of the node keyed by event name
// without the "on" prefix.
func (n *Node) Handlers() map[string]any {
	if n == nil || n.Kind != KindElement {
		return nil
	}
	var out map[string]any
	for key, value := range n.Props {
		if !IsEventKey(key) || value == nil {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[strings.ToLower(key[2:])] = value
	}
	return out
}

// IsInteractive reports whether the node has event handlers.
func (n *Node) IsInteractive() bool {
	return len(n.Handlers()) > 0
}

// IsEventKey reports whether a prop key names an event handler.
// The check is case-insensitive so onClick and ONCLICK are never rendered
// as attributes.
func IsEventKey(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// Text creates a text node.
func Text(content string) *Node {
	return &Node{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
func Raw(html string) *Node {
	return &Node{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *Node {
	node := &Node{Kind: KindFragment}
	for _, child := range children {
		appendChild(node, child)
	}
	return node
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *Node) *Node {
	if condition {
		return node
	}
	return nil
}

// Range maps items to nodes.
func Range[T any](items []T, fn func(int, T) *Node) []*Node {
	out := make([]*Node, 0, len(items))
	for i, item := range items {
		if n := fn(i, item); n != nil {
			out = append(out, n)
		}
	}
	return out
}
