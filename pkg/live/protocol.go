package live

import (
	"github.com/elishacook/microfun/pkg/render"
	"github.com/elishacook/microfun/pkg/vdom"
)

// Message types sent to clients.
const (
	MessageHTML    = "html"
	MessagePatches = "patches"
	MessageError   = "error"
)

// Message is a server to client frame.
type Message struct {
	Type    string      `json:"type"`
	Seq     uint64      `json:"seq,omitempty"`
	HTML    string      `json:"html,omitempty"`
	Patches []WirePatch `json:"patches,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WirePatch is the JSON form of a vdom.Patch. Nodes travel as rendered
// HTML carrying data-hid and data-on attributes.
type WirePatch struct {
	Op       string `json:"op"`
	HID      string `json:"hid,omitempty"`
	Key      string `json:"key,omitempty"`
	Value    string `json:"value,omitempty"`
	HTML     string `json:"html,omitempty"`
	ParentID string `json:"parent,omitempty"`
	Index    int    `json:"index,omitempty"`
}

// Event is a client to server frame.
type Event struct {
	HID   string `json:"hid"`
	Event string `json:"event"`
	Value string `json:"value"`
}

func encodePatches(r *render.Renderer, patches []vdom.Patch) ([]WirePatch, error) {
	out := make([]WirePatch, 0, len(patches))
	for _, p := range patches {
		wp := WirePatch{
			Op:       p.Op.String(),
			HID:      p.HID,
			Key:      p.Key,
			Value:    p.Value,
			ParentID: p.ParentID,
			Index:    p.Index,
		}
		if p.Node != nil {
			html, err := r.RenderToString(p.Node)
			if err != nil {
				return nil, err
			}
			wp.HTML = html
		}
		out = append(out, wp)
	}
	return out, nil
}
