package vdom

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// HIDGenerator generates unique hydration IDs.
type HIDGenerator struct {
	mu      sync.Mutex
	counter uint32
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID ("h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return "h" + strconv.FormatUint(uint64(g.counter), 10)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = 0
}

// AssignHIDs gives every element in the tree a fresh hydration ID.
func AssignHIDs(node *Node, gen *HIDGenerator) {
	if node == nil {
		return
	}
	if node.Kind == KindElement {
		node.HID = gen.Next()
	}
	for _, child := range node.Children {
		AssignHIDs(child, gen)
	}
}

// CollectHandlers returns the event handlers of every element with a HID,
// keyed by HID and then by event name.
func CollectHandlers(node *Node) map[string]map[string]any {
	out := make(map[string]map[string]any)
	collectHandlers(node, out)
	return out
}

func collectHandlers(node *Node, out map[string]map[string]any) {
	if node == nil {
		return
	}
	if node.HID != "" {
		if h := node.Handlers(); len(h) > 0 {
			out[node.HID] = h
		}
	}
	for _, child := range node.Children {
		collectHandlers(child, out)
	}
}

// EventNames returns the node's event names sorted and space separated
// ("click input"). Renderers emit it so clients know which events to send.
func EventNames(node *Node) string {
	h := node.Handlers()
	if len(h) == 0 {
		return ""
	}
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

// FindByHID finds a node by its HID in the tree.
func FindByHID(node *Node, hid string) *Node {
	if node == nil {
		return nil
	}
	if node.HID == hid {
		return node
	}
	for _, child := range node.Children {
		if found := FindByHID(child, hid); found != nil {
			return found
		}
	}
	return nil
}
