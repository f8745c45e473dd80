package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/config"
	"github.com/inc-tasks/task-api/internal/constants"
	"github.com/inc-tasks/task-api/internal/database"
	"github.com/inc-tasks/task-api/internal/handlers"
	"github.com/inc-tasks/task-api/internal/logger"
	"github.com/inc-tasks/task-api/internal/mailer"
	"github.com/inc-tasks/task-api/internal/repository"
	"github.com/inc-tasks/task-api/internal/router"
	"github.com/inc-tasks/task-api/internal/security"
	"github.com/inc-tasks/task-api/internal/services"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLogger := logger.New(cfg.GinMode, cfg.LogLevel)
	slog.SetDefault(appLogger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional Redis for the shared auth rate limit
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
	}

	sender, err := mailer.New(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to configure mailer: %v", err)
	}

	// Initialize AI service
	var generator services.DraftGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = services.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	hasher := services.NewPasswordHasher(constants.BcryptCost)
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.RefreshTokenSecret, cfg.JWTExpiresIn, cfg.RefreshExpiresIn)

	authService := services.NewAuthService(userRepo, tokens, hasher)
	passwordService := services.NewPasswordService(userRepo, hasher, sender, cfg.OTPTTL, appLogger)
	userService := services.NewUserService(userRepo, hasher)
	taskService := services.NewTaskService(taskRepo, userRepo, generator)

	r, err := router.New(router.Deps{
		Config:      cfg,
		Logger:      appLogger,
		DB:          db,
		Redis:       redisClient,
		Verifier:    authService,
		AuthHandler: handlers.NewAuthHandler(authService, passwordService),
		UserHandler: handlers.NewUserHandler(userService),
		TaskHandler: handlers.NewTaskHandler(taskService),
	})
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
}
