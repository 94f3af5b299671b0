package gateway

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/profilehub/user-platform/internal/api"
	"github.com/profilehub/user-platform/internal/api/health"
	"github.com/profilehub/user-platform/internal/api/middleware"
	"github.com/profilehub/user-platform/internal/core/ports"
	"github.com/profilehub/user-platform/internal/infrastructure/upstream"
)

// Deps collects the gateway's constructed dependencies. Everything is
// injected; the router owns no clients of its own.
type Deps struct {
	Auth    ports.AuthService
	Tokens  ports.TokenVerifier
	Profile *upstream.Client
	Data    *upstream.Client
	Mongo   *mongo.Database
	Redis   *redis.Client
	Log     zerolog.Logger
}

// NewRouter builds and returns the gateway Echo instance with all routes
// registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(d.Log)
	e.Validator = api.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	authHandler := NewAuthHandler(d.Auth)
	proxyHandler := NewProxyHandler(d.Profile, d.Data)

	// --- Public routes ---
	e.POST("/create_user", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Protected proxy routes: token check first, then relay ---
	protected := e.Group("", middleware.Auth(d.Tokens))
	protected.GET("/user", proxyHandler.GetProfile)
	protected.GET("/users", proxyHandler.ListProfiles)
	protected.POST("/user-update", proxyHandler.UpdateProfile)
	protected.DELETE("/delete-user", proxyHandler.DeleteProfile)
	protected.GET("/data", proxyHandler.GetData)
	protected.POST("/upload", proxyHandler.BulkUpload)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := health.NewHandler()
	healthDepsHandler := health.NewDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
