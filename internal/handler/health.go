package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health returns process status and timestamp, unauthenticated. Used by
// load balancers and uptime checks.
func Health(env string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":      "OK",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
		})
	}
}
