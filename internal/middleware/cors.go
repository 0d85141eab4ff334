package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORSAllowList enforces the configured origin allow-list for credentialed
// cross-origin requests. Matching is exact. Requests without an Origin
// header (same-origin, curl, mobile clients) pass through untouched; a
// present but unlisted Origin is rejected with 403 rather than silently
// stripped of CORS headers, so browsers and API clients see the same
// contract.
func CORSAllowList(origins []string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" {
				return next(c)
			}
			if !allowed[origin] {
				return c.JSON(http.StatusForbidden,
					echo.Map{"success": false, "message": "CORS error - Origin not allowed"})
			}

			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			h.Set(echo.HeaderAccessControlAllowCredentials, "true")
			h.Add(echo.HeaderVary, echo.HeaderOrigin)

			if c.Request().Method == http.MethodOptions {
				h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
				h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, Authorization, Cookie")
				h.Set(echo.HeaderAccessControlExposeHeaders, "Set-Cookie")
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
