package render

import (
	"io"
	"sync"

	"github.com/elishacook/microfun/pkg/vdom"
)

// Writer is a draw target that serializes every tree it is given to an
// io.Writer, one document per line (or per block in pretty mode).
type Writer struct {
	mu       sync.Mutex
	w        io.Writer
	renderer *Renderer
	draws    int
}

// NewWriter returns a Writer target over w.
func NewWriter(w io.Writer, config RendererConfig) *Writer {
	return &Writer{w: w, renderer: NewRenderer(config)}
}

// Render writes tree followed by a newline.
func (t *Writer) Render(tree *vdom.Node) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.renderer.RenderToWriter(t.w, tree); err != nil {
		return err
	}
	if !t.renderer.config.Pretty {
		if _, err := io.WriteString(t.w, "\n"); err != nil {
			return err
		}
	}
	t.draws++
	return nil
}

// Draws returns how many trees were written successfully.
func (t *Writer) Draws() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draws
}
