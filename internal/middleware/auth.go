// Package middleware contains the request-processing chain shared by the
// protected routes: identity extraction, role enforcement, the CORS
// allow-list and the Redis-backed cache and rate limiter.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hardikmakkar07/CineBooker/internal/config"
	"github.com/hardikmakkar07/CineBooker/internal/model"
	"github.com/hardikmakkar07/CineBooker/internal/repository"
	"github.com/hardikmakkar07/CineBooker/internal/utils"
)

// userContextKey is where Protect stores the resolved user on the request.
const userContextKey = "currentUser"

// UserLoader resolves a token subject to a live user record.
type UserLoader interface {
	FindByID(ctx context.Context, id uint64) (model.User, error)
}

// Protect validates the session token and attaches the caller's user record
// to the request context.
//
// The token is read from the "token" cookie first, then from a bearer
// Authorization header; the cookie wins when both are present. The token
// proves identity only: the user record, including role, is re-fetched from
// the store on every request so stale tokens cannot carry a revoked role.
//
// Absent, malformed or expired tokens are all rejected with the same
// generic 401. A valid token whose user no longer exists is also a 401, so
// the response does not confirm that the id ever existed.
func Protect(cfg config.Config, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized,
					echo.Map{"success": false, "message": "Not authorized to access this route"})
			}

			uid, err := utils.ParseSessionToken(cfg.JWTSecret, token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized,
					echo.Map{"success": false, "message": "Not authorized to access this route"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.FindByID(ctx, uid)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized,
						echo.Map{"success": false, "message": "Not authorized to access this route"})
				}
				return c.JSON(http.StatusInternalServerError,
					echo.Map{"success": false, "message": "Server error during authentication"})
			}

			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by Protect.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(userContextKey).(model.User)
	return u, ok
}

// SetCurrentUser exists for handler tests that bypass Protect.
func SetCurrentUser(c echo.Context, u model.User) {
	c.Set(userContextKey, u)
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie("token"); err == nil {
		if v := strings.TrimSpace(cookie.Value); v != "" && v != "none" {
			return v
		}
	}
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
