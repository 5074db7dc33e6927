package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coach-booking-service/config"
	deliveryHttp "coach-booking-service/internal/delivery/http"
	"coach-booking-service/internal/delivery/http/handler"
	"coach-booking-service/internal/delivery/http/middleware"
	"coach-booking-service/internal/infrastructure/cache"
	"coach-booking-service/internal/infrastructure/database"
	"coach-booking-service/internal/repository"
	"coach-booking-service/internal/service"
	"coach-booking-service/internal/usecase"
	"coach-booking-service/pkg/jwt"
	"coach-booking-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
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

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
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
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking timezone %q: %w", cfg.Booking.Timezone, err)
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	bookingTypeRepo := repository.NewBookingTypeRepository()
	bookingRepo := repository.NewBookingRepository()
	weeklySlotRepo := repository.NewWeeklySlotRepository()
	overrideRepo := repository.NewOverrideRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	slotHoldService := service.NewSlotHoldService(redisClient, log, cfg.Booking.SlotHoldTTL)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient)
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, location, bookingTypeRepo, weeklySlotRepo, overrideRepo, bookingRepo)
	bookingUsecase := usecase.NewBookingUsecase(db, log, location, cfg.Booking.CancelWindow, bookingTypeRepo, bookingRepo, weeklySlotRepo, overrideRepo, slotHoldService)
	bookingTypeUsecase := usecase.NewBookingTypeUsecase(db, log, bookingTypeRepo)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, weeklySlotRepo, overrideRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	publicBookingHandler := handler.NewPublicBookingHandler(availabilityUsecase, bookingUsecase, customValidator)
	practitionerBookingHandler := handler.NewPractitionerBookingHandler(bookingUsecase)
	bookingTypeHandler := handler.NewBookingTypeHandler(bookingTypeUsecase, customValidator)
	availabilityHandler := handler.NewAvailabilityHandler(scheduleUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, publicBookingHandler, practitionerBookingHandler, bookingTypeHandler, availabilityHandler, authMiddleware, corsMiddleware)
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

// Close closes all connections (database, redis, etc.)
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
}
