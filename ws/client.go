package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/maninivas13/farmasthi/internal/logger"
	"github.com/maninivas13/farmasthi/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one live channel of one user.
type Client struct {
	UserID string
	Role   models.UserRole

	conn     *websocket.Conn
	send     chan any
	registry *Registry

	closeOnce sync.Once
	sendOnce  sync.Once
	detached  bool
}

func newClient(registry *Registry, conn *websocket.Conn, userID string, role models.UserRole, bufferSize int) *Client {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Client{
		UserID:   userID,
		Role:     role,
		conn:     conn,
		send:     make(chan any, bufferSize),
		registry: registry,
	}
}

// trySend enqueues without blocking. Caller must hold the registry lock.
// A full buffer drops the message: delivery is at-most-once per channel
// and durability comes from the persisted record, not from retry.
func (c *Client) trySend(message any) {
	if c.detached {
		return
	}
	select {
	case c.send <- message:
	default:
		logger.Warn("websocket send buffer full, dropping message", "user_id", c.UserID)
	}
}

// detach marks the client dead and closes its send channel exactly once.
// Caller must hold the registry write lock.
func (c *Client) detach() {
	c.detached = true
	c.sendOnce.Do(func() {
		close(c.send)
	})
}

// Close tears the connection down. Safe to call from both the read-failure
// path and the handshake error path; unregister runs exactly once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.registry.Unregister(c)
		c.conn.Close()
	})
}

// reply enqueues a protocol frame for this client through the registry.
func (c *Client) reply(message any) {
	c.registry.enqueue(c, message)
}

func (c *Client) readPump() {
	defer c.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msgBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", "user_id", c.UserID, "error", err.Error())
			}
			return
		}
		c.handleFrame(msgBytes)
	}
}

// handleFrame processes one inbound control frame. A malformed frame gets
// an in-band error reply; the channel stays open.
func (c *Client) handleFrame(msgBytes []byte) {
	var frame InboundFrame
	if err := json.Unmarshal(msgBytes, &frame); err != nil {
		c.reply(ErrorFrame{Type: "error", Message: "Invalid JSON"})
		return
	}

	switch frame.Type {
	case "ping":
		c.reply(PongFrame{Type: "pong"})

	case "subscribe":
		c.reply(SubscribedFrame{Type: "subscribed", Channel: frame.Channel})

	default:
		logger.Debug("unhandled websocket frame", "type", frame.Type, "user_id", c.UserID)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				logger.Warn("websocket write error", "user_id", c.UserID, "error", err.Error())
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
