package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/accountd/account-api/docs"
	"github.com/accountd/account-api/internal/api/handler"
	"github.com/accountd/account-api/internal/api/middleware"
	"github.com/accountd/account-api/internal/core/domain"
	"github.com/accountd/account-api/internal/core/service"
	"github.com/accountd/account-api/internal/infrastructure/config"
	mongodb "github.com/accountd/account-api/internal/infrastructure/db/mongo"
	redisdb "github.com/accountd/account-api/internal/infrastructure/db/redis"
	"github.com/accountd/account-api/internal/pkg/hash"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	hasher := hash.NewBcryptHasher(bcrypt.DefaultCost)
	sessionManager := service.NewSessionManager(sessionStore, sessionRepo, cfg.Session.TTL)
	authService := service.NewAuthService(userRepo, sessionRepo, sessionManager, hasher)
	userService := service.NewUserService(userRepo, hasher)

	cookie := handler.CookieSettings{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.Secure,
	}
	authHandler := handler.NewAuthHandler(authService, cookie)
	userHandler := handler.NewUserHandler(userService)
	accountHandler := handler.NewAccountHandler(authService, userService, cookie)

	// Session loader runs on every route; the gates below do the rejecting.
	e.Use(middleware.Session(sessionManager, cfg.Session.CookieName, log))

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, middleware.IsAuthenticated)
	auth.GET("/me", authHandler.Me, middleware.IsAuthenticated, middleware.IsNotAdmin)
	auth.GET("/admin", authHandler.Admin, middleware.IsAuthenticated, middleware.IsAdmin)
	auth.GET("/sessions", authHandler.Sessions, middleware.IsAuthenticated)
	auth.GET("/sessions/:id", authHandler.Session, middleware.IsAuthenticated)

	// --- User management ---
	users := e.Group("/users")
	users.GET("", userHandler.List, middleware.IsAuthenticated, middleware.HasRole(domain.RoleUser))
	users.GET("/:id", userHandler.Get, middleware.IsAuthenticated, middleware.HasRole(domain.RoleUser))
	users.PUT("/:id", userHandler.Update, middleware.IsAuthenticated)

	// --- Self-service account ---
	account := e.Group("/account", middleware.IsAuthenticated)
	account.GET("", accountHandler.Get)
	account.PUT("", accountHandler.Update)
	account.DELETE("", accountHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
