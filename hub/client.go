// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Same cross-origin posture as the HTTP API
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientCommand is what an observer sends over the socket: join or leave
// a poll/quiz code.
type clientCommand struct {
	Action string `json:"action"`
	Code   string `json:"code"`
}

// serverEvent wraps a VoteUpdate for the wire.
type serverEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client ties one websocket connection to a hub subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	sub  *Subscriber
}

// ServeWS upgrades an HTTP request to a websocket observer connection.
// Handles GET /ws.
func ServeWS(h *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	c := &Client{hub: h, conn: conn, sub: h.NewSubscriber()}
	go c.writePump()
	go c.readPump()
}

// readPump consumes join/leave commands until the connection drops, then
// removes every subscription the observer held.
func (c *Client) readPump() {
	defer func() {
		c.hub.Drop(c.sub)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var cmd clientCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			return
		}

		switch cmd.Action {
		case "join":
			if cmd.Code != "" {
				c.hub.Join(cmd.Code, c.sub)
				slog.Info("observer joined room", "code", cmd.Code, "observers", c.hub.RoomSize(cmd.Code))
			}
		case "leave":
			if cmd.Code != "" {
				c.hub.Leave(cmd.Code, c.sub)
			}
		default:
			// unknown commands are ignored
		}
	}
}

// writePump forwards vote updates and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case update, ok := <-c.sub.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			event := serverEvent{Type: "vote_update", Payload: update}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
