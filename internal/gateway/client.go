package gateway

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ktanaka/coderelay-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Ping interval; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size
	maxMessageSize = 64 * 1024

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one websocket connection. The server assigns its PlayerID at
// upgrade time; clients never pick their own identity.
type Client struct {
	id          model.PlayerID
	conn        *websocket.Conn
	send        chan []byte
	done        chan struct{}
	closeOnce   sync.Once
	connectedAt time.Time

	// mu guards room membership state
	mu     sync.Mutex
	roomID model.RoomID
	hub    *Hub
}

func newClient(id model.PlayerID, conn *websocket.Conn) *Client {
	return &Client{
		id:          id,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		done:        make(chan struct{}),
		connectedAt: time.Now(),
	}
}

// shutdown signals the write pump to drain and exit. The send channel is
// never closed; hubs may race a final broadcast against disconnect.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

// room returns the client's current room, or ("", nil) if not joined
func (c *Client) room() (model.RoomID, *Hub) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID, c.hub
}

func (c *Client) setRoom(roomID model.RoomID, hub *Hub) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
	c.hub = hub
}

func (c *Client) clearRoom() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = ""
	c.hub = nil
}

// sendEvent queues a private event for this client. Messages are dropped
// rather than blocking the caller when the client can't keep up.
func (c *Client) sendEvent(event string, data any) {
	payload, err := json.Marshal(model.ServerEvent{Event: event, Data: data})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) sendError(message string) {
	c.sendEvent(model.EventError, model.ErrorPayload{Message: message})
}

// readPump reads inbound frames and hands them to the gateway. It owns
// the connection's read side; there is exactly one per client.
func (c *Client) readPump(g *Gateway) {
	defer func() {
		g.disconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Warn("websocket read failed",
					slog.String("player_id", string(c.id)),
					slog.String("error", err.Error()))
			}
			return
		}
		g.dispatch(c, raw)
	}
}

// writePump writes queued frames and keepalive pings. It owns the
// connection's write side; there is exactly one per client.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
