package render

import (
	"io"

	"github.com/elishacook/microfun/pkg/vdom"
)

// PageData contains everything needed to render a complete HTML document.
type PageData struct {
	// Body is rendered inside <body>.
	Body *vdom.Node

	// Title is the page title.
	Title string

	// Lang defaults to "en".
	Lang string

	// Styles are inline CSS blocks placed in the head.
	Styles []string

	// Script is the URL of an external client script, loaded with defer.
	Script string

	// Inline is JavaScript placed at the end of the body.
	Inline string
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	sw := &stickyWriter{w: w}
	sw.WriteString("<!DOCTYPE html>\n")
	sw.Printf(`<html lang="%s">`+"\n", escapeAttr(lang))
	sw.WriteString("<head>\n")
	sw.WriteString(`  <meta charset="utf-8">` + "\n")
	sw.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.Title != "" {
		sw.Printf("  <title>%s</title>\n", escapeHTML(page.Title))
	}
	for _, style := range page.Styles {
		sw.Printf("  <style>%s</style>\n", style)
	}
	if page.Script != "" {
		sw.Printf(`  <script src="%s" defer></script>`+"\n", escapeAttr(page.Script))
	}
	sw.WriteString("</head>\n<body>\n")

	if err := r.renderNode(sw, page.Body, 0); err != nil {
		return err
	}
	sw.WriteString("\n")

	if page.Inline != "" {
		sw.Printf("<script>%s</script>\n", page.Inline)
	}
	sw.WriteString("</body>\n</html>\n")
	return sw.err
}
