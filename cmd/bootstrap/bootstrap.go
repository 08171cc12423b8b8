package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medical-imaging-backend/config"
	deliveryHttp "medical-imaging-backend/internal/delivery/http"
	"medical-imaging-backend/internal/delivery/http/handler"
	"medical-imaging-backend/internal/delivery/http/middleware"
	"medical-imaging-backend/internal/infrastructure/ai"
	"medical-imaging-backend/internal/infrastructure/cache"
	"medical-imaging-backend/internal/infrastructure/database"
	"medical-imaging-backend/internal/infrastructure/oauth"
	"medical-imaging-backend/internal/infrastructure/storage"
	"medical-imaging-backend/internal/repository"
	"medical-imaging-backend/internal/service"
	"medical-imaging-backend/internal/usecase"
	"medical-imaging-backend/pkg/jwt"
	"medical-imaging-backend/pkg/validator"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const migrationsDir = "db/migrations"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Drafter     *ai.GeminiDrafter
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize the AI drafting adapter. Constructed once here and
	// injected; nothing holds it globally.
	drafter, err := ai.NewGeminiDrafter(context.Background(), cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI drafter: %w", err)
	}
	app.Drafter = drafter
	logrus.Info("AI drafting adapter initialized")

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient, drafter)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, drafter *ai.GeminiDrafter) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize file storage
	fileStore, err := storage.NewLocalStore(cfg.Storage.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Initialize token store and OAuth provider
	tokenStore := cache.NewRedisTokenStore(redisClient)
	githubProvider := oauth.NewGitHubProvider(cfg.OAuth)
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	imageRepo := repository.NewImageRepository(db)
	reportRepo := repository.NewReportRepository(db)
	annotationRepo := repository.NewAnnotationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(log, auditRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, jwtService, tokenStore, githubProvider, auditService, cfg.App.FrontendURL)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo)
	imageUsecase := usecase.NewImageUsecase(log, imageRepo, patientRepo, fileStore)
	reportUsecase := usecase.NewReportUsecase(log, reportRepo)
	annotationUsecase := usecase.NewAnnotationUsecase(log, annotationRepo)
	adminUsecase := usecase.NewAdminUsecase(log, userRepo, patientRepo, reportRepo, auditService)
	aiReportUsecase := usecase.NewAIReportUsecase(log, imageRepo, reportRepo, fileStore, drafter)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, sessionStore)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	imageHandler := handler.NewImageHandler(imageUsecase, customValidator)
	reportHandler := handler.NewReportHandler(reportUsecase, customValidator)
	annotationHandler := handler.NewAnnotationHandler(annotationUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator)
	aiHandler := handler.NewAIHandler(aiReportUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, userRepo)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.FrontendURL)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		imageHandler,
		reportHandler,
		annotationHandler,
		adminHandler,
		aiHandler,
		authMiddleware,
		corsMiddleware,
		middleware.DefaultPolicy(),
		cfg.Storage.UploadDir,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, AI client)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	// Close the AI client
	if app.Drafter != nil {
		app.Drafter.Close()
	}
}
