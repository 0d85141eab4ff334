package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "cine")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "cinebooker")
	t.Setenv("JWT_SECRET", "s3cret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.Production())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30, cfg.JWTExpireDays)
	assert.Equal(t, 30, cfg.CookieExpireDays)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.AMQPURL)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_EXPIRE_DAYS", "7")
	t.Setenv("BCRYPT_COST", "12")

	cfg := Load()

	assert.True(t, cfg.Production())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 7, cfg.JWTExpireDays)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestEnvListSplitsAndTrims(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " http://a.example.com , https://b.example.com ,, ")

	got := envList("ALLOWED_ORIGINS", "http://fallback")

	require.Equal(t, []string{"http://a.example.com", "https://b.example.com"}, got)
}

func TestEnvListFallsBackWhenUnset(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")

	got := envList("ALLOWED_ORIGINS", "http://fallback")

	assert.Equal(t, []string{"http://fallback"}, got)
}
