// Package ws implements the real-time notification channel: a websocket
// endpoint, the per-user connection registry, and the frame protocol on top.
package ws

import (
	"encoding/json"

	"github.com/maninivas13/farmasthi/internal/models"
)

// InboundFrame is the envelope for client -> server control frames.
// Recognized types: "ping", "subscribe".
type InboundFrame struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ConnectionFrame acknowledges a successful handshake.
type ConnectionFrame struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	UserID  string          `json:"user_id"`
	Role    models.UserRole `json:"role"`
}

// PongFrame answers a ping.
type PongFrame struct {
	Type string `json:"type"`
}

// SubscribedFrame acknowledges a subscribe request. Topic filtering is not
// implemented; the acknowledgement is protocol compatibility only.
type SubscribedFrame struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

// ErrorFrame reports an in-band protocol error without closing the channel.
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NotificationFrame wraps a persisted notification for live delivery.
type NotificationFrame struct {
	Type string               `json:"type"`
	Data *models.Notification `json:"data"`
}

// NewNotificationFrame builds the outbound frame for a notification record.
func NewNotificationFrame(n *models.Notification) NotificationFrame {
	return NotificationFrame{Type: "notification", Data: n}
}
