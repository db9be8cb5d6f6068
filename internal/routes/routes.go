package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maninivas13/farmasthi/internal/handlers"
	"github.com/maninivas13/farmasthi/internal/logger"
	"github.com/maninivas13/farmasthi/ws"
)

// RegisterRoutes wires all HTTP and WebSocket routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
	uploadBasePath string,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.QueryHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.UploadHandler.RegisterRoutes(api)
	}

	// Uploaded attachments are served back at the URL the upload
	// response handed out.
	ginRouter.Static("/files", uploadBasePath)

	// The WebSocket endpoint authenticates via the token query
	// parameter inside the handshake, not the Authorization header, so
	// it stays outside the auth middleware.
	wsGroup := ginRouter.Group("/ws")
	{
		wsGroup.GET("/notifications", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws/notifications registered")
}
