// Package handler implements the HTTP endpoints. Handlers are thin: bind,
// validate, call a store, map errors to the response taxonomy. Every
// response carries the success envelope, so the two helpers below are the
// only places that spell it.
package handler

import "github.com/labstack/echo/v4"

// ok writes a success envelope with the given extra fields.
func ok(c echo.Context, status int, fields echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.JSON(status, body)
}

// fail writes the error envelope. The message is the client-facing text;
// internal detail belongs in the server log, not here.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "message": message})
}
