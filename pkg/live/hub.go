package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/elishacook/microfun/internal/errors"
	"github.com/elishacook/microfun/pkg/render"
	"github.com/elishacook/microfun/pkg/vdom"
)

// Poster runs functions on the goroutine that owns the model. *flow.Loop
// implements it.
type Poster interface {
	Post(fn func()) error
}

// Metrics receives transport events. *telemetry.Metrics implements it.
type Metrics interface {
	ClientConnected()
	ClientDisconnected()
	PatchesSent(n int)
	EventError(reason string)
}

type nopMetrics struct{}

func (nopMetrics) ClientConnected()    {}
func (nopMetrics) ClientDisconnected() {}
func (nopMetrics) PatchesSent(int)     {}
func (nopMetrics) EventError(string)   {}

// HubConfig configures a Hub.
type HubConfig struct {
	// ReadTimeout closes a client that sends neither events nor pongs for
	// this long. The hub pings at 9/10 of it. Zero disables both.
	ReadTimeout time.Duration

	// WriteTimeout bounds each message write. Default 10s.
	WriteTimeout time.Duration

	// SendBuffer is the per-client queue length. A client whose queue
	// fills is disconnected. Default 64.
	SendBuffer int

	// History is the number of patch messages kept for clients that
	// reconnect with ?seq=N. Default 100; negative disables replay.
	History int

	// CheckOrigin is passed to the websocket upgrader. Nil accepts only
	// same-origin requests.
	CheckOrigin func(r *http.Request) bool

	Metrics Metrics
	Logger  *slog.Logger
}

// Hub is a flow.Target that mirrors every draw to connected browsers.
type Hub struct {
	poster   Poster
	config   HubConfig
	upgrader websocket.Upgrader
	renderer *render.Renderer
	metrics  Metrics
	logger   *slog.Logger

	mu       sync.Mutex
	gen      *vdom.HIDGenerator
	tree     *vdom.Node
	handlers map[string]map[string]any
	seq      uint64
	history  *history
	clients  map[*client]struct{}
	closed   bool
}

// NewHub creates a hub whose event handlers run through poster.
func NewHub(poster Poster, config HubConfig) *Hub {
	if config.WriteTimeout <= 0 {
		config.WriteTimeout = 10 * time.Second
	}
	if config.SendBuffer <= 0 {
		config.SendBuffer = 64
	}
	if config.History == 0 {
		config.History = 100
	}
	if config.History < 0 {
		config.History = 0
	}
	if config.Metrics == nil {
		config.Metrics = nopMetrics{}
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Hub{
		poster: poster,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		renderer: render.NewRenderer(render.RendererConfig{}),
		metrics:  config.Metrics,
		logger:   config.Logger.With("component", "live"),
		gen:      vdom.NewHIDGenerator(),
		handlers: map[string]map[string]any{},
		history:  newHistory(config.History),
		clients:  make(map[*client]struct{}),
	}
}

// Render implements flow.Target. It diffs tree against the previous draw
// and broadcasts the patches. A draw that cannot be encoded leaves the
// previous tree and sequence number in place.
func (h *Hub) Render(tree *vdom.Node) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	patches := vdom.Diff(h.tree, tree, h.gen)
	if len(patches) == 0 {
		h.tree = tree
		h.handlers = vdom.CollectHandlers(tree)
		return nil
	}

	wire, err := encodePatches(h.renderer, patches)
	if err != nil {
		return err
	}
	seq := h.seq + 1
	data, err := json.Marshal(Message{Type: MessagePatches, Seq: seq, Patches: wire})
	if err != nil {
		return err
	}

	h.tree = tree
	h.handlers = vdom.CollectHandlers(tree)
	h.seq = seq
	h.history.add(seq, data)
	for c := range h.clients {
		if h.enqueue(c, data) {
			h.metrics.PatchesSent(len(patches))
		}
	}
	return nil
}

// Tree returns the last drawn tree. It must not be modified.
func (h *Hub) Tree() *vdom.Node {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tree
}

// Seq returns the sequence number of the last broadcast.
func (h *Hub) Seq() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request to a WebSocket and serves the client
// until it disconnects. A client that reconnects with ?seq=N, the last
// sequence it applied, is sent only the patches it missed when they are
// still in the history.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var lastSeq uint64
	if v := r.URL.Query().Get("seq"); v != "" {
		lastSeq, _ = strconv.ParseUint(v, 10, 64)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.config.SendBuffer)}
	if err := h.register(c, lastSeq); err != nil {
		h.logger.Error("client register failed", "error", err)
		conn.Close()
		return
	}
	h.logger.Debug("client connected", "remote", r.RemoteAddr)

	go h.writeLoop(c)
	h.readLoop(c)
}

// register adds c and queues what it needs to catch up: the missed
// patches when lastSeq is recoverable, the current document otherwise.
func (h *Hub) register(c *client, lastSeq uint64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errors.New("E003")
	}

	if lastSeq > 0 && lastSeq <= h.seq {
		missed, ok := h.history.since(lastSeq, h.seq)
		if ok && len(missed) < cap(c.send) {
			for _, data := range missed {
				c.send <- data
			}
			h.clients[c] = struct{}{}
			h.metrics.ClientConnected()
			h.logger.Debug("client resumed", "from", lastSeq, "replayed", len(missed))
			return nil
		}
	}

	html := ""
	if h.tree != nil {
		var err error
		if html, err = h.renderer.RenderToString(h.tree); err != nil {
			return err
		}
	}
	data, err := json.Marshal(Message{Type: MessageHTML, Seq: h.seq, HTML: html})
	if err != nil {
		return err
	}
	c.send <- data
	h.clients[c] = struct{}{}
	h.metrics.ClientConnected()
	return nil
}

// enqueue queues data for c, dropping the client when its queue is full.
// h.mu must be held.
func (h *Hub) enqueue(c *client, data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		h.logger.Warn("client send queue full, disconnecting")
		h.removeLocked(c)
		return false
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.ClientDisconnected()
}

// handler returns the handler bound to event on hid in the last draw.
func (h *Hub) handler(hid, event string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn, ok := h.handlers[hid][event]
	return fn, ok
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(time.Second),
		)
		h.removeLocked(c)
	}
}
