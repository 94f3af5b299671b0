package profile

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/profilehub/user-platform/internal/api"
	"github.com/profilehub/user-platform/internal/api/health"
	"github.com/profilehub/user-platform/internal/core/ports"
)

// Deps collects the profile service's constructed dependencies.
type Deps struct {
	Profiles ports.ProfileService
	Imports  ports.ImportService
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the profile-service Echo instance. The
// service sits on the internal network behind the gateway, which owns token
// verification; requests arriving here are already authenticated.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(d.Log)
	e.Validator = api.NewValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("profile"))

	profileHandler := NewProfileHandler(d.Profiles)
	bulkHandler := NewBulkHandler(d.Imports)

	e.GET("/profile", profileHandler.Get)
	e.POST("/profile", profileHandler.Get)
	e.GET("/profiles", profileHandler.List)
	e.POST("/profileUpdate", profileHandler.Update)
	e.DELETE("/profileDelete", profileHandler.Delete)
	e.POST("/profileBulkUpload", bulkHandler.Upload)

	healthHandler := health.NewHandler()
	healthDepsHandler := health.NewDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
