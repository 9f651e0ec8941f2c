package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ContextKey is where the JWT middleware stores the validated claims.
const ContextKey = "user"

// ClaimsFromContext returns the validated claims set by the JWT middleware,
// or nil when the request is unauthenticated.
func ClaimsFromContext(c echo.Context) *Claims {
	claims, _ := c.Get(ContextKey).(*Claims)
	return claims
}

// RequireRole returns middleware that rejects requests whose authenticated
// principal does not hold the named role. It must run after the JWT
// middleware has validated the token.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := ClaimsFromContext(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if !claims.HasRole(role) {
				return echo.NewHTTPError(http.StatusForbidden, "role "+role+" required")
			}
			return next(c)
		}
	}
}
