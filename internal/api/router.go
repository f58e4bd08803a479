package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/messagely/messaging-api/internal/api/handler"
	"github.com/messagely/messaging-api/internal/api/middleware"
	"github.com/messagely/messaging-api/internal/core/ports"
	"github.com/messagely/messaging-api/internal/core/service"
	"github.com/messagely/messaging-api/internal/core/token"
	mongodb "github.com/messagely/messaging-api/internal/infrastructure/db/mongo"
	redisdb "github.com/messagely/messaging-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, issuer *token.Issuer, audit ports.AuditSink, bcryptCost int, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("messagely"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, issuer, throttle, audit, bcryptCost, log)
	userService := service.NewUserService(userRepo, messageRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	messageHandler := handler.NewMessageHandler(messageService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(issuer))
	v1.GET("/users", userHandler.List)
	v1.GET("/users/:username", userHandler.Get)
	v1.GET("/users/:username/messages/from", userHandler.MessagesFrom)
	v1.GET("/users/:username/messages/to", userHandler.MessagesTo)
	v1.POST("/messages", messageHandler.Send)
	v1.GET("/messages/:id", messageHandler.Get)
	v1.POST("/messages/:id/read", messageHandler.MarkRead)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
