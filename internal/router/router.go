package router

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/inc-tasks/task-api/internal/config"
	"github.com/inc-tasks/task-api/internal/handlers"
	"github.com/inc-tasks/task-api/internal/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the collaborators the HTTP surface is built from. Redis is optional.
type Deps struct {
	Config      *config.Config
	Logger      *slog.Logger
	DB          *gorm.DB
	Redis       *redis.Client
	Verifier    middleware.TokenVerifier
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
	TaskHandler *handlers.TaskHandler
}

// New builds the gin engine with every route mounted under /api. X-Forwarded-For is only
// honoured from the configured trusted proxies; with none configured the peer address is used.
func New(deps Deps) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(cors.New(corsConfig(deps.Config.CORSAllowedOrigins)))

	r.GET("/health", healthHandler(deps.DB))

	requireAuth := middleware.RequireAuth(deps.Verifier)
	authLimit := authRateLimiter(deps)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(authLimit)
		{
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/refresh-token", deps.AuthHandler.RefreshToken)
			auth.POST("/forgot-password", deps.AuthHandler.ForgotPassword)
			auth.POST("/verify-otp", deps.AuthHandler.VerifyOTP)
			auth.POST("/update-password", deps.AuthHandler.UpdatePassword)
		}
		api.GET("/auth/verify-token", requireAuth, deps.AuthHandler.VerifyToken)

		users := api.Group("/users")
		{
			users.POST("", middleware.OptionalAuth(deps.Verifier), deps.UserHandler.CreateUser)
			users.POST("/login", authLimit, deps.AuthHandler.Login)

			users.GET("/profile", requireAuth, deps.UserHandler.GetProfile)
			users.PUT("/profile", requireAuth, deps.UserHandler.UpdateProfile)
			users.DELETE("/profile", requireAuth, deps.UserHandler.DeleteProfile)

			users.GET("", requireAuth, deps.UserHandler.ListUsers)
			users.GET("/username/:username", requireAuth, deps.UserHandler.GetUserByUsername)
			users.GET("/role/:role", requireAuth, deps.UserHandler.ListUsersByRole)
		}

		admin := api.Group("/admin")
		admin.Use(requireAuth, middleware.RequireAdmin())
		{
			admin.GET("/users", deps.UserHandler.AdminGetUser)
			admin.PUT("/users", deps.UserHandler.AdminUpdateUser)
			admin.DELETE("/users", deps.UserHandler.AdminDeleteUser)
			admin.GET("/users/:id", deps.UserHandler.AdminGetUser)
			admin.PUT("/users/:id", deps.UserHandler.AdminUpdateUser)
			admin.DELETE("/users/:id", deps.UserHandler.AdminDeleteUser)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", deps.TaskHandler.ListTasks)
			tasks.POST("", deps.TaskHandler.CreateTask)
			tasks.POST("/generate", deps.TaskHandler.GenerateTasks)
			tasks.GET("/:id", deps.TaskHandler.GetTask)
			tasks.PUT("/:id", deps.TaskHandler.UpdateTask)
			tasks.PATCH("/:id/status", deps.TaskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", deps.TaskHandler.DeleteTask)
		}

		api.GET("/my-tasks", requireAuth, deps.TaskHandler.MyTasks)
		api.GET("/stats/tasks", requireAuth, deps.TaskHandler.TaskStats)
	}

	return r, nil
}

// authRateLimiter shares the budget through Redis when configured, otherwise per process
func authRateLimiter(deps Deps) gin.HandlerFunc {
	perMinute := deps.Config.AuthRateLimitPerMinute
	if deps.Redis != nil && perMinute > 0 {
		limiter := middleware.NewDistributedRateLimiter(deps.Redis, deps.Logger)
		return limiter.CreateMiddleware("auth", &middleware.RateLimit{
			Rate:    perMinute,
			Window:  time.Minute,
			KeyFunc: middleware.IPKeyFunc,
		})
	}
	return middleware.RateLimiter(middleware.PerMinute(perMinute))
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unavailable",
					"message": "Database is not reachable",
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Management API is running",
		})
	}
}
