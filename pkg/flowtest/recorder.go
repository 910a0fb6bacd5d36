package flowtest

import (
	"sync"

	"github.com/elishacook/microfun/pkg/render"
	"github.com/elishacook/microfun/pkg/vdom"
)

// Recorder is a draw target that keeps every tree it receives. Each tree
// gets fresh hydration IDs so handlers can be found by HID.
type Recorder struct {
	mu    sync.Mutex
	trees []*vdom.Node
	fail  error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Render records tree, or returns the error set by Fail.
func (r *Recorder) Render(tree *vdom.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	vdom.AssignHIDs(tree, vdom.NewHIDGenerator())
	r.trees = append(r.trees, tree)
	return nil
}

// Fail makes later draws return err. A nil err restores normal recording.
func (r *Recorder) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = err
}

// Draws returns the number of recorded trees.
func (r *Recorder) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trees)
}

// Trees returns a copy of the recorded trees, oldest first.
func (r *Recorder) Trees() []*vdom.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*vdom.Node(nil), r.trees...)
}

// Last returns the most recent tree, or nil.
func (r *Recorder) Last() *vdom.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.trees) == 0 {
		return nil
	}
	return r.trees[len(r.trees)-1]
}

// HTML renders the most recent tree.
func (r *Recorder) HTML() string {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(r.Last())
	if err != nil {
		return "render error: " + err.Error()
	}
	return html
}
