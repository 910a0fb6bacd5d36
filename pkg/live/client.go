package live

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/elishacook/microfun/internal/errors"
	"github.com/elishacook/microfun/pkg/vdom"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// readLoop decodes events until the connection fails.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
		h.logger.Debug("client disconnected")
	}()

	if h.config.ReadTimeout > 0 {
		c.conn.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
		})
	}

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				h.logger.Error("read error", "error", err)
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil || ev.HID == "" || ev.Event == "" {
			h.metrics.EventError("decode")
			h.reply(c, errors.New("E011").Wrap(err))
			continue
		}
		if h.config.ReadTimeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(h.config.ReadTimeout))
		}
		h.dispatch(c, ev)
	}
}

// dispatch runs the event's handler on the owning goroutine.
func (h *Hub) dispatch(c *client, ev Event) {
	err := h.poster.Post(func() {
		fn, ok := h.handler(ev.HID, ev.Event)
		if !ok {
			h.metrics.EventError("handler")
			h.logger.Debug("handler not found", "hid", ev.HID, "event", ev.Event)
			h.reply(c, errors.New("E010").WithDetail("Element "+ev.HID+" has no "+ev.Event+" handler."))
			return
		}
		if err := vdom.CallHandler(fn, ev.Value); err != nil {
			h.metrics.EventError("handler")
			h.logger.Error("handler call failed", "hid", ev.HID, "event", ev.Event, "error", err)
			h.reply(c, err)
		}
	})
	if err != nil {
		h.metrics.EventError("queue")
		h.reply(c, err)
	}
}

// reply sends an error message to one client.
func (h *Hub) reply(c *client, err error) {
	data, merr := json.Marshal(Message{Type: MessageError, Error: err.Error()})
	if merr != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		h.enqueue(c, data)
	}
}

// writeLoop drains the client's queue until it is closed. With a read
// timeout it also pings often enough for pongs to keep the client alive.
func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	var ping <-chan time.Time
	if h.config.ReadTimeout > 0 {
		ticker := time.NewTicker(h.config.ReadTimeout * 9 / 10)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Debug("write failed", "error", err)
				h.drop(c)
				return
			}
		case <-ping:
			deadline := time.Now().Add(h.config.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				h.logger.Debug("ping failed", "error", err)
				h.drop(c)
				return
			}
		}
	}
}

// drop unregisters c after a write failure and drains its queue until
// remove closes it.
func (h *Hub) drop(c *client) {
	h.remove(c)
	for range c.send {
	}
}
