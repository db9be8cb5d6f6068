package ws

import (
	"sync"

	"github.com/maninivas13/farmasthi/internal/logger"
	"github.com/maninivas13/farmasthi/internal/models"
)

// Registry tracks the open channels of every connected user. A user may
// hold several concurrent connections (multi-device); the set is bounded
// by maxPerUser, evicting the oldest connection when a new one exceeds it.
//
// The registry is the only shared mutable state of the push subsystem.
// All mutation happens under mu; channel closes also happen under mu so
// that senders iterating a snapshot can never hit a closed channel.
type Registry struct {
	mu         sync.RWMutex
	clients    map[string][]*Client
	maxPerUser int
}

// NewRegistry creates an empty registry. maxPerUser <= 0 disables the
// per-user connection bound.
func NewRegistry(maxPerUser int) *Registry {
	return &Registry{
		clients:    make(map[string][]*Client),
		maxPerUser: maxPerUser,
	}
}

// Register adds the client to its user's connection set. When the set is
// full the oldest connection is told why and detached.
func (r *Registry) Register(client *Client) {
	r.mu.Lock()

	set := r.clients[client.UserID]
	var evicted *Client
	if r.maxPerUser > 0 && len(set) >= r.maxPerUser {
		evicted = set[0]
		set = set[1:]
	}
	r.clients[client.UserID] = append(set, client)

	if evicted != nil {
		evicted.trySend(ErrorFrame{Type: "error", Message: "Connection replaced by a newer device"})
		evicted.detach()
	}

	total := len(r.clients[client.UserID])
	r.mu.Unlock()

	if evicted != nil {
		logger.Warn("websocket connection evicted", "user_id", client.UserID)
	}
	logger.Info("websocket client registered", "user_id", client.UserID, "role", client.Role, "connections", total)
}

// Unregister removes the client and closes its send channel exactly once.
// When the user's set becomes empty the entry is removed entirely.
func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()

	if set, ok := r.clients[client.UserID]; ok {
		for i, existing := range set {
			if existing == client {
				set = append(set[:i], set[i+1:]...)
				break
			}
		}
		if len(set) == 0 {
			delete(r.clients, client.UserID)
		} else {
			r.clients[client.UserID] = set
		}
	}
	client.detach()

	r.mu.Unlock()

	logger.Info("websocket client unregistered", "user_id", client.UserID)
}

// SendToUser delivers the message to every live channel of the user.
// A full or detached channel is skipped; one bad channel never blocks
// delivery to the others. A user with no channels is a no-op.
func (r *Registry) SendToUser(userID string, message any) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, client := range r.clients[userID] {
		client.trySend(message)
	}
}

// BroadcastToRole delivers the message to every channel whose user holds
// the role. Role is the one captured from validated claims at handshake.
func (r *Registry) BroadcastToRole(role models.UserRole, message any) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, set := range r.clients {
		for _, client := range set {
			if client.Role == role {
				client.trySend(message)
			}
		}
	}
}

// BroadcastAll delivers the message to every registered channel.
func (r *Registry) BroadcastAll(message any) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, set := range r.clients {
		for _, client := range set {
			client.trySend(message)
		}
	}
}

// enqueue sends a protocol reply to a single client. Must go through the
// read lock so it cannot race a detach.
func (r *Registry) enqueue(client *Client, message any) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client.trySend(message)
}

// IsConnected reports whether the user has at least one live channel.
func (r *Registry) IsConnected(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[userID]
	return ok
}

// ConnectionCount returns the number of live channels for the user.
func (r *Registry) ConnectionCount(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients[userID])
}

// ClientCount returns the total number of live channels.
func (r *Registry) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, set := range r.clients {
		total += len(set)
	}
	return total
}
