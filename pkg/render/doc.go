// Package render serializes vdom trees to HTML.
//
// Rendering never assigns hydration IDs; it writes the ones already on the
// tree (see vdom.AssignHIDs and vdom.Diff) as data-hid attributes, and the
// event names of interactive elements as a data-on attribute so a live
// client knows which DOM events to forward:
//
//	<button data-hid="h3" data-on="click">+</button>
//
// # Basic Usage
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
// # Full Page Rendering
//
//	err := r.RenderPage(w, render.PageData{
//	    Title:  "Counter",
//	    Body:   tree,
//	    Inline: clientJS,
//	})
//
// # Targets
//
// Writer adapts an io.Writer to a draw target: each Render call writes the
// whole tree followed by a newline. It is the simplest target for CLIs and
// tests.
//
// # Security
//
// Text and attribute values are escaped. KindRaw nodes are written as is and
// should only carry trusted content.
package render
