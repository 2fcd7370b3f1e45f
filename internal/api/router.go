package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hrsuite/hr-backend/internal/api/handler"
	"github.com/hrsuite/hr-backend/internal/api/middleware"
	"github.com/hrsuite/hr-backend/internal/core/domain"
	"github.com/hrsuite/hr-backend/internal/core/service"
	"github.com/hrsuite/hr-backend/internal/infrastructure/config"
	mongodb "github.com/hrsuite/hr-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/hrsuite/hr-backend/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit handler.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hr"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokenService := service.NewTokenService(service.TokenConfig{
		Secret:    cfg.JWT.Secret,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
		AccessTTL: cfg.JWT.AccessTTL,
	})
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxLoginAttempts, cfg.Throttle.Window)
	authService := service.NewAuthService(userRepo, tokenService, throttle, cfg.JWT.RefreshTTL, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService, audit)
	userHandler := handler.NewUserHandler(userService, audit)

	authMiddleware := middleware.Auth(middleware.TokenVerifier{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authMiddleware)

	// --- User routes ---
	user := e.Group("/api/user")
	user.POST("/register", userHandler.Register)
	user.GET("", userHandler.GetUsers, authMiddleware, adminOnly)
	user.GET("/:id", userHandler.GetUser, authMiddleware)
	user.DELETE("/:id", userHandler.DeleteUser, authMiddleware, adminOnly)

	// --- Employee admin surface ---
	user.GET("/employee", userHandler.ListEmployees, authMiddleware, adminOnly)
	user.POST("/new-employee", userHandler.CreateEmployee, authMiddleware, adminOnly)
	user.PUT("/employee", userHandler.UpdateEmployee, authMiddleware, adminOnly)
	user.DELETE("/employee", userHandler.DeleteEmployee, authMiddleware, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
