package services

// ServiceContainer holds the application's services.
type ServiceContainer struct {
	AuthService         AuthService
	QueryService        QueryService
	NotificationService NotificationService
	NotifierService     NotifierService
	ChatService         ChatService
	UploadService       UploadService
}
