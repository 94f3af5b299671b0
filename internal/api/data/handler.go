// Package data implements the data service's single static endpoint.
package data

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/profilehub/user-platform/internal/api"
	"github.com/profilehub/user-platform/internal/api/health"
)

type infoResponse struct {
	Message string `json:"message"`
	Items   []int  `json:"items"`
}

// Info handles GET /info.
func Info(c echo.Context) error {
	return c.JSON(http.StatusOK, infoResponse{
		Message: "Secure data access successful!",
		Items:   []int{1, 2, 3, 4},
	})
}

// NewRouter builds the data-service Echo instance.
func NewRouter(log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	e.GET("/info", Info)
	e.GET("/health", health.NewHandler().Liveness)

	return e
}
