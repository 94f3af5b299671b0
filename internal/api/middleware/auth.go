package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/profilehub/user-platform/internal/core/domain"
	"github.com/profilehub/user-platform/internal/core/ports"
)

// IdentityKey is the context key under which Auth stores the verified
// identity (the account email bound to the token).
const IdentityKey = "identity"

// Auth verifies the bearer token and injects the identity into context.
// Failure short-circuits before any downstream call; the error handler maps
// each token error to its own 401 message.
func Auth(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return domain.ErrTokenMissing
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrTokenInvalid
			}

			identity, err := tokens.Verify(parts[1])
			if err != nil {
				return err
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}
