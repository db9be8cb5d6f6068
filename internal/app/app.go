package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/maninivas13/farmasthi/internal/auth"
	"github.com/maninivas13/farmasthi/internal/chatbot"
	"github.com/maninivas13/farmasthi/internal/config"
	"github.com/maninivas13/farmasthi/internal/database"
	"github.com/maninivas13/farmasthi/internal/handlers"
	"github.com/maninivas13/farmasthi/internal/logger"
	"github.com/maninivas13/farmasthi/internal/middleware"
	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories"
	"github.com/maninivas13/farmasthi/internal/repositories/memory"
	"github.com/maninivas13/farmasthi/internal/routes"
	"github.com/maninivas13/farmasthi/internal/services"
	"github.com/maninivas13/farmasthi/internal/storage"
	"github.com/maninivas13/farmasthi/internal/validator"
	"github.com/maninivas13/farmasthi/ws"
)

// Repositories bundles the storage backends. The concrete set is chosen
// once at startup: Postgres when reachable, the in-memory fallback
// otherwise.
type Repositories struct {
	Users         repositories.UserRepository
	Queries       repositories.QueryRepository
	Notifications repositories.NotificationRepository
	Chats         repositories.ChatRepository
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	repos := buildRepositories(cfg)

	if err := seedFirstAdmin(repos.Users); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, repos)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// buildRepositories connects to Postgres and migrates the schema. If the
// database is unreachable the server still comes up, degraded to
// in-memory storage that loses data on restart.
func buildRepositories(cfg *config.Config) *Repositories {
	gormDB := connectDatabase(cfg)
	if gormDB == nil {
		logger.Warn("Running in degraded mode: data is held in memory and lost on restart")
		return &Repositories{
			Users:         memory.NewUserRepository(),
			Queries:       memory.NewQueryRepository(),
			Notifications: memory.NewNotificationRepository(),
			Chats:         memory.NewChatRepository(),
		}
	}

	return &Repositories{
		Users:         repositories.NewUserRepository(gormDB),
		Queries:       repositories.NewQueryRepository(gormDB),
		Notifications: repositories.NewNotificationRepository(gormDB),
		Chats:         repositories.NewChatRepository(gormDB),
	}
}

func connectDatabase(cfg *config.Config) *gorm.DB {
	if cfg.Database.DSN == "" {
		logger.Warn("No database URL configured")
		return nil
	}

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Warn("Failed to connect to database", "error", err)
		return nil
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Warn("Failed to get *sql.DB from GORM", "error", err)
		return nil
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Warn("Database unreachable", "error", err)
		return nil
	}

	if err := database.Migrate(gormDB); err != nil {
		logger.Warn("Failed to migrate schema", "error", err)
		return nil
	}

	logger.Info("Database connected")
	return gormDB
}

func SetupRouter(cfg *config.Config, repos *Repositories) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Upload.Type,
		BasePath:  cfg.Upload.BasePath,
		BaseURL:   cfg.Upload.BaseURL,
		Bucket:    cfg.Upload.Bucket,
		Region:    cfg.Upload.Region,
		AccessKey: cfg.Upload.AccessKey,
		SecretKey: cfg.Upload.SecretKey,
		Endpoint:  cfg.Upload.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	// One registry instance per process; every component that pushes to
	// live connections goes through it.
	registry := ws.NewRegistry(cfg.WebSocket.MaxConnectionsPerUser)
	wsHandler := ws.NewHandler(registry, cfg.WebSocket.SendBufferSize)

	serviceContainer := initializeServices(cfg, repos, registry, storageInstance)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, cfg.Upload.BasePath)

	return ginRouter
}

func initializeServices(cfg *config.Config, repos *Repositories, registry *ws.Registry, storageInstance storage.Storage) *services.ServiceContainer {
	assistant := chatbot.New(chatbot.Config{
		OpenAIKey:  cfg.Chatbot.OpenAIKey,
		GeminiKey:  cfg.Chatbot.GeminiKey,
		WeatherKey: cfg.Chatbot.WeatherKey,
	})

	notifierService := services.NewNotifierService(repos.Notifications, registry, func(n *models.Notification) any {
		return ws.NewNotificationFrame(n)
	})

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(repos.Users),
		QueryService:        services.NewQueryService(repos.Queries, repos.Users, notifierService, cfg),
		NotificationService: services.NewNotificationService(repos.Notifications),
		NotifierService:     notifierService,
		ChatService:         services.NewChatService(repos.Chats, repos.Users, assistant),
		UploadService:       services.NewUploadService(storageInstance, cfg),
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		QueryHandler:        handlers.NewQueryHandler(baseHandler, container.QueryService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		ChatHandler:         handlers.NewChatHandler(baseHandler, container.ChatService),
		UploadHandler:       handlers.NewUploadHandler(baseHandler, container.UploadService),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin bootstraps the admin account from the environment. Admins
// cannot self-register, so a fresh deployment sets FIRST_ADMIN_PHONE and
// FIRST_ADMIN_PASSWORD once.
func seedFirstAdmin(userRepo repositories.UserRepository) error {
	adminPhone := os.Getenv("FIRST_ADMIN_PHONE")
	adminPassword := os.Getenv("FIRST_ADMIN_PASSWORD")

	if adminPhone == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_PHONE or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	if _, err := userRepo.FindByPhone(adminPhone); err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "phone", adminPhone)
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Administrator",
		Phone:        adminPhone,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "phone", adminPhone)
	return nil
}
