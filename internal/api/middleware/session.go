package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enterprisehub/portal/internal/core/navigation"
	"github.com/enterprisehub/portal/internal/core/ports"
)

// identityKey is where RequireSession stashes the identity for downstream
// handlers.
const identityKey = "identity"

// RequireSession redirects unauthenticated requests to the login page and
// injects the current identity into the request context. The identity is
// read fresh from the session on every request; nothing is cached across
// renders.
func RequireSession(session ports.Session) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := session.Current()
			if !ok {
				return c.Redirect(http.StatusSeeOther, navigation.PathLogin)
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}
