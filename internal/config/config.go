// Package config loads application configuration from environment variables.
// Everything is read exactly once at startup into a Config value that is then
// passed to the layers that need it; nothing reads the environment at request
// time.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration. Required values are enforced by
// must() and abort startup when missing; the rest fall back to defaults that
// mirror the original deployment.
type Config struct {
	Env  string // "development" or "production"; controls cookie Secure flag and error detail
	Port string // HTTP port to listen on

	DBUser string
	DBPass string // optional
	DBHost string
	DBPort string
	DBName string

	JWTSecret        string // secret used to sign session tokens
	JWTExpireDays    int    // token lifetime in days
	CookieExpireDays int    // session cookie lifetime in days
	BcryptCost       int    // bcrypt cost for password hashing

	// AllowedOrigins is the exact-match allow-list for credentialed
	// cross-origin requests.
	AllowedOrigins []string

	RedisAddr     string // host:port, empty disables redis-backed middleware
	RedisPassword string
	RedisDB       int

	AMQPURL string // broker URL for booking events, empty disables publishing
}

// Load reads the environment and returns a Config. Missing required
// variables are fatal.
func Load() Config {
	return Config{
		Env:  getenv("APP_ENV", "development"),
		Port: getenv("APP_PORT", "8080"),

		DBUser: must("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: must("DB_HOST"),
		DBPort: must("DB_PORT"),
		DBName: must("DB_NAME"),

		JWTSecret:        must("JWT_SECRET"),
		JWTExpireDays:    envInt("JWT_EXPIRE_DAYS", 30),
		CookieExpireDays: envInt("JWT_COOKIE_EXPIRE_DAYS", 30),
		BcryptCost:       envInt("BCRYPT_COST", 10),

		AllowedOrigins: envList("ALLOWED_ORIGINS",
			"http://localhost:3000", "http://localhost:3001"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		AMQPURL: os.Getenv("AMQP_URL"),
	}
}

// Production reports whether the process runs in a production-designated
// environment.
func (c Config) Production() bool { return c.Env == "production" }

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

// envList splits a comma-separated variable, trimming blanks. The defaults
// are used only when the variable is unset entirely.
func envList(key string, def ...string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
