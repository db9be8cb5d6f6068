package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maninivas13/farmasthi/internal/models"
)

func registeredClient(t *testing.T, registry *Registry) *Client {
	t.Helper()
	client := testClient(registry, "farmer-1", models.UserRoleFarmer, 4)
	registry.Register(client)
	return client
}

func TestHandleFrame_PingPong(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	client := registeredClient(t, registry)

	client.handleFrame([]byte(`{"type":"ping"}`))

	msg, ok := receive(t, client)
	require.True(t, ok)
	assert.Equal(t, PongFrame{Type: "pong"}, msg)
}

func TestHandleFrame_Subscribe(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	client := registeredClient(t, registry)

	client.handleFrame([]byte(`{"type":"subscribe","channel":"queries"}`))

	msg, ok := receive(t, client)
	require.True(t, ok)
	assert.Equal(t, SubscribedFrame{Type: "subscribed", Channel: "queries"}, msg)
}

func TestHandleFrame_InvalidJSONKeepsChannelOpen(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	client := registeredClient(t, registry)

	client.handleFrame([]byte("not json at all"))

	msg, ok := receive(t, client)
	require.True(t, ok)
	assert.Equal(t, ErrorFrame{Type: "error", Message: "Invalid JSON"}, msg)

	// The channel survives the bad frame.
	client.handleFrame([]byte(`{"type":"ping"}`))
	msg, ok = receive(t, client)
	require.True(t, ok)
	assert.Equal(t, PongFrame{Type: "pong"}, msg)
}

func TestHandleFrame_UnknownTypeIgnored(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(8)
	client := registeredClient(t, registry)

	client.handleFrame([]byte(`{"type":"dance"}`))

	_, ok := receive(t, client)
	assert.False(t, ok, "unknown frame types get no reply")
}

func TestNewNotificationFrame(t *testing.T) {
	t.Parallel()

	n := &models.Notification{
		UserID: "farmer-1",
		Type:   models.NotificationQueryAssigned,
		Title:  "Query Assigned",
	}
	frame := NewNotificationFrame(n)
	assert.Equal(t, "notification", frame.Type)
	assert.Equal(t, n, frame.Data)
}
