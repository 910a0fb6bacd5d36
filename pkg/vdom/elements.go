package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with the given tag. Arguments can be: nil, Attr,
// []Attr, EventHandler, *Node, []*Node, or string (a text child).
func El(tag string, args ...any) *Node {
	node := &Node{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			setAttr(node, v)
		case []Attr:
			for _, a := range v {
				setAttr(node, a)
			}
		case EventHandler:
			if v.Handler != nil {
				node.Props[v.Event] = v.Handler
			}
		default:
			appendChild(node, arg)
		}
	}
	return node
}

func setAttr(node *Node, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
		return
	}
	node.Props[a.Key] = a.Value
}

func appendChild(node *Node, child any) {
	switch v := child.(type) {
	case nil:
	case *Node:
		if v != nil {
			node.Children = append(node.Children, v)
		}
	case []*Node:
		for _, c := range v {
			if c != nil {
				node.Children = append(node.Children, c)
			}
		}
	case string:
		node.Children = append(node.Children, Text(v))
	}
}

// Document structure

func Html(args ...any) *Node   { return El("html", args...) }
func Head(args ...any) *Node   { return El("head", args...) }
func Body(args ...any) *Node   { return El("body", args...) }
func Title(args ...any) *Node  { return El("title", args...) }
func Meta(args ...any) *Node   { return El("meta", args...) }
func Script(args ...any) *Node { return El("script", args...) }

// Sectioning and text

func Main(args ...any) *Node    { return El("main", args...) }
func Header(args ...any) *Node  { return El("header", args...) }
func Footer(args ...any) *Node  { return El("footer", args...) }
func Section(args ...any) *Node { return El("section", args...) }
func H1(args ...any) *Node      { return El("h1", args...) }
func H2(args ...any) *Node      { return El("h2", args...) }
func Div(args ...any) *Node     { return El("div", args...) }
func P(args ...any) *Node       { return El("p", args...) }
func Span(args ...any) *Node    { return El("span", args...) }
func Strong(args ...any) *Node  { return El("strong", args...) }
func Ul(args ...any) *Node      { return El("ul", args...) }
func Li(args ...any) *Node      { return El("li", args...) }
func A(args ...any) *Node       { return El("a", args...) }
func Br(args ...any) *Node      { return El("br", args...) }

// Forms

func Form(args ...any) *Node   { return El("form", args...) }
func Input(args ...any) *Node  { return El("input", args...) }
func Button(args ...any) *Node { return El("button", args...) }
func Label(args ...any) *Node  { return El("label", args...) }
