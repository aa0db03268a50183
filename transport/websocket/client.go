package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait is how long a single write may take before the
	// connection is considered dead.
	writeWait = 10 * time.Second

	// pongWait is how long to wait for the client's pong reply.
	pongWait = 60 * time.Second

	// pingPeriod must be shorter than pongWait.
	pingPeriod = (pongWait * 9) / 10

	sendBufferSize = 16
)

// Client is one connected identity: the socket, its outbound queue, and
// the server-assigned id the coordinator knows it by.
type Client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	send chan Message
}

// readPump feeds inbound messages into the hub's single event loop and
// unregisters the client when the connection drops.
func (that *Client) readPump(log *slog.Logger) {
	defer func() {
		that.hub.unregister <- that
		_ = that.conn.Close()
	}()

	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var message Message
		if err := that.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("unexpected close", "clientID", that.id, "error", err)
			}
			return
		}

		that.hub.incoming <- envelope{client: that, message: message}
	}
}

// writePump drains the send queue onto the socket and keeps the
// connection alive with periodic pings.
func (that *Client) writePump(log *slog.Logger) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := that.conn.WriteJSON(message); err != nil {
				log.Warn("write failed", "clientID", that.id, "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
