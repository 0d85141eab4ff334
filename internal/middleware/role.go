package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole aborts the request with 403 unless the user attached by
// Protect holds one of the given roles. Role comes from the store-backed
// user record, never from token claims.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized,
					echo.Map{"success": false, "message": "Not authorized to access this route"})
			}
			if !allowed[u.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": fmt.Sprintf("User role '%s' is not authorized to access this route", u.Role),
				})
			}
			return next(c)
		}
	}
}
