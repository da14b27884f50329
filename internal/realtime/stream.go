// Package realtime pushes server-rendered fragments to connected browsers.
// Database change feeds are bridged onto the message bus, rendered, and
// fanned out over a websocket per signed-in user.
package realtime

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/remitflow/remitflow/internal/hub"
	"github.com/remitflow/remitflow/internal/middleware"
	"github.com/remitflow/remitflow/web/src/templates/components"
)

// StreamHandler upgrades /ws/stream requests and ties each connection to
// the hub.
type StreamHandler struct {
	hub    *hub.Hub
	toasts *ToastLog
}

// NewStreamHandler creates a new StreamHandler. toasts may be nil when no
// replay is wanted.
func NewStreamHandler(h *hub.Hub, toasts *ToastLog) *StreamHandler {
	return &StreamHandler{hub: h, toasts: toasts}
}

// ServeWS handles a websocket connection request. The stream is push-only:
// the server sends rendered fragments, the client sends nothing of
// consequence.
func (h *StreamHandler) ServeWS(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.String(http.StatusUnauthorized, "not authenticated")
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		slog.Error("Failed to upgrade websocket connection", "error", err)
		return c.String(http.StatusInternalServerError, "failed to upgrade to websocket")
	}

	sub := &hub.Subscriber{
		UserID: user.ID.String(),
		Send:   make(chan []byte, 256),
	}
	client := &client{conn: conn, hub: h.hub, subscriber: sub}
	h.replayToasts(sub)
	h.hub.Register <- sub

	go client.writePump()
	go client.readPump()

	return nil
}

// replayToasts queues the user's still-visible toasts ahead of any live
// traffic, so a reconnecting browser catches up on what it missed.
func (h *StreamHandler) replayToasts(sub *hub.Subscriber) {
	if h.toasts == nil {
		return
	}
	for _, n := range h.toasts.Visible(sub.UserID) {
		var buf bytes.Buffer
		if err := components.Toast(string(n.Level), n.Message).Render(&buf); err != nil {
			slog.Error("Failed to render replayed toast", "error", err)
			continue
		}
		select {
		case sub.Send <- buf.Bytes():
		default:
		}
	}
}

// client is the middleman between one websocket connection and the hub.
type client struct {
	conn       *websocket.Conn
	hub        *hub.Hub
	subscriber *hub.Subscriber
}

// readPump drains the connection so close frames are processed. There is
// at most one reader per connection.
func (c *client) readPump() {
	defer func() {
		c.hub.Unregister <- c.subscriber
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		if _, _, err := c.conn.Read(context.Background()); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				slog.Debug("Websocket closed normally")
			} else {
				slog.Debug("Websocket read ended", "error", err)
			}
			return
		}
		// Inbound messages are ignored; the stream is one-way.
	}
}

// writePump forwards hub messages to the connection. There is at most one
// writer per connection.
func (c *client) writePump() {
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	for message := range c.subscriber.Send {
		if err := c.conn.Write(context.Background(), websocket.MessageText, message); err != nil {
			slog.Debug("Websocket write failed", "error", err)
			return
		}
	}
}
