package handlers

// AppHandlers holds the application's HTTP handlers.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	QueryHandler        *QueryHandler
	NotificationHandler *NotificationHandler
	ChatHandler         *ChatHandler
	UploadHandler       *UploadHandler
}
