package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/maninivas13/farmasthi/internal/auth"
	"github.com/maninivas13/farmasthi/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin check is delegated to the reverse proxy
	},
}

type Handler struct {
	registry   *Registry
	bufferSize int
}

func NewHandler(registry *Registry, sendBufferSize int) *Handler {
	return &Handler{
		registry:   registry,
		bufferSize: sendBufferSize,
	}
}

// ServeWS upgrades the connection and runs the handshake. The access token
// arrives as the `token` query parameter; a missing or invalid token closes
// the channel with a policy-violation code before any application frame is
// exchanged.
func (h *Handler) ServeWS(c *gin.Context) {
	token := c.Query("token")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	claims, err := auth.ParseToken(token)
	if token == "" || err != nil {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "Invalid token")
		conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
		return
	}

	client := newClient(h.registry, conn, claims.UserID, claims.Role, h.bufferSize)
	h.registry.Register(client)

	client.reply(ConnectionFrame{
		Type:    "connection",
		Message: "Connected to FarmaSathi notifications",
		UserID:  client.UserID,
		Role:    client.Role,
	})

	go client.writePump()
	go client.readPump()
}
