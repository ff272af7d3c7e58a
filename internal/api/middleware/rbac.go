package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enterprisehub/portal/internal/core/domain"
)

// RequireElevated gates administrative routes on the elevated-role
// predicate. An absent identity or an unrecognised role fails closed.
// Must run after RequireSession.
func RequireElevated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get(identityKey).(domain.Identity)
			if !ok || !identity.Role.Elevated() {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
