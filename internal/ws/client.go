package ws

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vigil-labs/vigil/internal/hub"
)

const (
	// writeWait is the maximum time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// pongWait is the maximum time to wait for a pong reply from the peer.
	pongWait = 60 * time.Second
	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize is the maximum inbound message size in bytes. Observers
	// are receive-only; inbound traffic is limited to control frames.
	maxMessageSize = 512
)

// Client couples one WebSocket connection to one hub observer. The observer
// lives exactly as long as the connection.
type Client struct {
	conn     *websocket.Conn
	hub      *hub.Hub
	observer *hub.Observer
}

// NewClient subscribes a new observer for the connection.
func NewClient(h *hub.Hub, conn *websocket.Conn) *Client {
	return &Client{
		conn:     conn,
		hub:      h,
		observer: h.Subscribe(),
	}
}

// ReadPump consumes (and discards) inbound frames so that pongs are
// processed and disconnects are detected. It runs in its own goroutine per
// client and unsubscribes the observer on exit.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unsubscribe(c.observer)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("ws: observer %s read error: %v", c.observer.ID, err)
			}
			return
		}
	}
}

// WritePump forwards the observer's events to the WebSocket connection and
// keeps it alive with pings. It runs in its own goroutine per client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.observer.Events():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("ws: observer %s: marshal event: %v", c.observer.ID, err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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
