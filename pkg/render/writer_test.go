package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/elishacook/microfun/pkg/vdom"
)

func TestWriterRender(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, RendererConfig{})

	if err := w.Render(vdom.P("1")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := w.Render(vdom.P("2")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got, want := buf.String(), "<p>1</p>\n<p>2</p>\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if w.Draws() != 2 {
		t.Errorf("Draws() = %d, want 2", w.Draws())
	}
}

func TestWriterRenderError(t *testing.T) {
	boom := errors.New("closed")
	w := NewWriter(failingWriter{boom}, RendererConfig{})

	if err := w.Render(vdom.P("x")); !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, want %v", err, boom)
	}
	if w.Draws() != 0 {
		t.Errorf("Draws() = %d, want 0", w.Draws())
	}
}
