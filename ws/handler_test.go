package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maninivas13/farmasthi/internal/auth"
	"github.com/maninivas13/farmasthi/internal/models"
)

func wsTestServer(t *testing.T) (*httptest.Server, *Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := NewRegistry(8)
	handler := NewHandler(registry, 16)

	router := gin.New()
	router.GET("/ws/notifications", handler.ServeWS)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, registry
}

func dial(t *testing.T, server *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/notifications?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	var frame map[string]any
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestServeWS_InvalidTokenClosesWithPolicyViolation(t *testing.T) {
	server, _ := wsTestServer(t)
	conn := dial(t, server, "not-a-valid-token")

	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok, "expected close frame, got %v", err)
	assert.Equal(t, websocket.ClosePolicyViolation, closeErr.Code)
	assert.Equal(t, "Invalid token", closeErr.Text)
}

func TestServeWS_HandshakeAndPush(t *testing.T) {
	server, registry := wsTestServer(t)

	token, err := auth.GenerateToken("farmer-1", models.UserRoleFarmer)
	require.NoError(t, err)

	conn := dial(t, server, token)

	// Handshake acknowledgement arrives first.
	ack := readFrame(t, conn)
	assert.Equal(t, "connection", ack["type"])
	assert.Equal(t, "farmer-1", ack["user_id"])
	assert.Equal(t, "farmer", ack["role"])

	// Wait for registration to complete before pushing.
	require.Eventually(t, func() bool {
		return registry.IsConnected("farmer-1")
	}, time.Second, 10*time.Millisecond)

	registry.SendToUser("farmer-1", NewNotificationFrame(&models.Notification{
		UserID: "farmer-1",
		Type:   models.NotificationQueryAssigned,
		Title:  "Query Assigned",
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, "notification", frame["type"])
	data, ok := frame["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Query Assigned", data["title"])
}

func TestServeWS_PingPongAndInvalidJSON(t *testing.T) {
	server, _ := wsTestServer(t)

	token, err := auth.GenerateToken("farmer-1", models.UserRoleFarmer)
	require.NoError(t, err)

	conn := dial(t, server, token)
	readFrame(t, conn) // connection ack

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	pong := readFrame(t, conn)
	assert.Equal(t, "pong", pong["type"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("garbage")))
	errFrame := readFrame(t, conn)
	assert.Equal(t, "error", errFrame["type"])
	assert.Equal(t, "Invalid JSON", errFrame["message"])

	// The channel is still usable after the protocol error.
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe", "channel": "queries"}))
	sub := readFrame(t, conn)
	assert.Equal(t, "subscribed", sub["type"])
	assert.Equal(t, "queries", sub["channel"])
}

func TestServeWS_SubscribeAckIsJSON(t *testing.T) {
	// SubscribedFrame must serialize with both fields even for an empty
	// channel name.
	raw, err := json.Marshal(SubscribedFrame{Type: "subscribed"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"subscribed","channel":""}`, string(raw))
}
