package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/profilehub/user-platform/internal/core/domain"
)

// errorResponse is the generic error envelope for errors that have no
// endpoint-specific shape of their own.
type errorResponse struct {
	Error string `json:"error"`
}

// msgResponse mirrors the {"msg": ...} shape the auth endpoints use.
type msgResponse struct {
	Msg string `json:"msg"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps token failures to 401 with the failure-specific message, so an
//     expired session is never reported as a malformed one.
//   - Maps upstream unavailability to 502.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch {
		case errors.Is(err, domain.ErrTokenMissing),
			errors.Is(err, domain.ErrTokenInvalid),
			errors.Is(err, domain.ErrTokenExpired):
			_ = c.JSON(http.StatusUnauthorized, msgResponse{Msg: err.Error()})
			return
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			log.Error().Err(err).Str("path", c.Path()).Msg("backend unreachable")
			_ = c.JSON(http.StatusBadGateway, errorResponse{Error: "upstream unavailable"})
			return
		}

		// Echo's own errors (bind failures, 404 from router, etc.)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)})
			return
		}

		// Unexpected error: log the real cause, return a generic message.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("unhandled error")

		_ = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
