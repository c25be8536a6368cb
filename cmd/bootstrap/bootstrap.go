package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-admin-api/config"
	deliveryHttp "clinic-admin-api/internal/delivery/http"
	"clinic-admin-api/internal/delivery/http/handler"
	"clinic-admin-api/internal/delivery/http/middleware"
	"clinic-admin-api/internal/infrastructure/cache"
	"clinic-admin-api/internal/infrastructure/database"
	"clinic-admin-api/internal/repository"
	"clinic-admin-api/internal/service"
	"clinic-admin-api/internal/usecase"
	"clinic-admin-api/pkg/jwt"
	"clinic-admin-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	configFile      = ".env"
	shutdownTimeout = 10 * time.Second
)

// App holds all dependencies for the application
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	RedisClient  *redis.Client
	Server       *http.Server
	LoginLimiter *middleware.RateLimiter
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := database.RunMigrations(database.MigrationURL(cfg.DB)); err != nil {
		app.Close()
		return nil, err
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	if err := app.initializeServer(); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown log level %q, using info", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// initializeServer wires every layer, makes sure the admin account exists,
// and creates the HTTP server.
func (app *App) initializeServer() error {
	cfg := app.Config
	db := app.DB

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	adminRepo := repository.NewAdminRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	medicationRepo := repository.NewMedicationRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)
	tokenRepo := repository.NewTokenRepository(app.RedisClient)
	fingerprintRepo := repository.NewFingerprintRepository(app.RedisClient)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, adminRepo, tokenRepo, jwtService, auditService)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, patientRepo, auditService)
	medicationUsecase := usecase.NewMedicationUsecase(log, medicationRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)
	fingerprintUsecase := usecase.NewFingerprintUsecase(log, patientRepo, fingerprintRepo, auditService, cfg.Fingerprint.MaxWait)

	// Reconcile the admin account before accepting traffic
	if cfg.Admin.Password == config.DefaultAdminPassword {
		logrus.Warn("ADMIN_PASSWORD is not set, using the default admin password")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	created, err := authUsecase.EnsureDefaultAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}
	if created {
		logrus.Infof("Admin account %q created", cfg.Admin.Username)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	medicationHandler := handler.NewMedicationHandler(medicationUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	fingerprintHandler := handler.NewFingerprintHandler(fingerprintUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(log, jwtService, tokenRepo)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)
	app.LoginLimiter = middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)

	if cfg.Fingerprint.DeviceAPIKey == "" {
		logrus.Warn("DEVICE_API_KEY is not set, fingerprint device routes are disabled")
	}

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		authHandler,
		patientHandler,
		appointmentHandler,
		medicationHandler,
		auditLogHandler,
		fingerprintHandler,
		authMiddleware,
		corsMiddleware,
		app.LoginLimiter,
		cfg.Fingerprint.DeviceAPIKey,
	)

	// Create server. WriteTimeout leaves room for the longest fingerprint wait.
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Fingerprint.MaxWait + 15*time.Second,
	}

	return nil
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
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close releases the rate limiter, database, and redis.
func (app *App) Close() {
	if app.LoginLimiter != nil {
		app.LoginLimiter.Stop()
	}

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
}
