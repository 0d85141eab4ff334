package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corsOrigins = []string{"http://localhost:3000", "https://app.example.com"}

func runCORS(t *testing.T, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/movie", nil)
	if origin != "" {
		req.Header.Set(echo.HeaderOrigin, origin)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, CORSAllowList(corsOrigins)(next)(c))
	return rec
}

func TestCORSNoOriginPassesThrough(t *testing.T) {
	rec := runCORS(t, http.MethodGet, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSAllowedOrigin(t *testing.T) {
	rec := runCORS(t, http.MethodGet, "http://localhost:3000")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
	assert.Contains(t, rec.Header().Values(echo.HeaderVary), echo.HeaderOrigin)
}

func TestCORSDisallowedOrigin(t *testing.T) {
	rec := runCORS(t, http.MethodGet, "https://evil.example.com")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), "CORS error - Origin not allowed")
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSExactMatchOnly(t *testing.T) {
	// Prefix and scheme variants of an allowed origin are still rejected.
	for _, origin := range []string{
		"http://localhost:3000.evil.example.com",
		"https://localhost:3000",
		"http://localhost:30000",
	} {
		rec := runCORS(t, http.MethodGet, origin)
		assert.Equal(t, http.StatusForbidden, rec.Code, "origin %q", origin)
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := runCORS(t, http.MethodOptions, "https://app.example.com")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get(echo.HeaderAccessControlAllowMethods))
	assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), "Authorization")
	assert.Equal(t, "Set-Cookie", rec.Header().Get(echo.HeaderAccessControlExposeHeaders))
}

func TestCORSPreflightDisallowedOrigin(t *testing.T) {
	rec := runCORS(t, http.MethodOptions, "https://evil.example.com")

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
