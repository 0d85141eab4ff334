// Package router wires handlers, middleware and routes onto the Echo
// instance. Paths follow the public API contract: /auth for sessions and
// user administration, one group per catalogue resource, /health for
// liveness.
package router

import (
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/hardikmakkar07/CineBooker/internal/config"
	"github.com/hardikmakkar07/CineBooker/internal/handler"
	"github.com/hardikmakkar07/CineBooker/internal/middleware"
	"github.com/hardikmakkar07/CineBooker/internal/model"
)

// Handlers carries every handler the router mounts.
type Handlers struct {
	Auth      *handler.AuthHandler
	Cinemas   *handler.CinemaHandler
	Theaters  *handler.TheaterHandler
	Movies    *handler.MovieHandler
	Showtimes *handler.ShowtimeHandler
	Booking   *handler.BookingHandler
}

// Register mounts all routes and the shared middleware chain.
func Register(e *echo.Echo, cfg config.Config, rdb *redis.Client, users middleware.UserLoader, h Handlers) {
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.BodyLimit("10M"))
	e.Use(middleware.CORSAllowList(cfg.AllowedOrigins))

	e.GET("/health", handler.Health(cfg.Env))

	protect := middleware.Protect(cfg, users)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	limiter := middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register, limiter)
	auth.POST("/login", h.Auth.Login, limiter)
	auth.GET("/me", h.Auth.Me, protect)
	auth.GET("/tickets", h.Auth.MyTickets, protect)
	auth.GET("/logout", h.Auth.Logout, protect)
	auth.GET("/users", h.Auth.AllUsers, protect, adminOnly)
	auth.DELETE("/user/:id", h.Auth.DeleteUser, protect, adminOnly)
	// Update is admin-or-self; the handler enforces the ownership rule.
	auth.PUT("/user/:id", h.Auth.UpdateUser, protect)

	cinema := e.Group("/cinema")
	cinema.GET("", h.Cinemas.List, cache)
	cinema.GET("/:id", h.Cinemas.Get, cache)
	cinema.POST("", h.Cinemas.Create, protect, adminOnly)
	cinema.PUT("/:id", h.Cinemas.Update, protect, adminOnly)
	cinema.DELETE("/:id", h.Cinemas.Delete, protect, adminOnly)

	theater := e.Group("/theater")
	theater.GET("", h.Theaters.List, cache)
	theater.GET("/:id", h.Theaters.Get, cache)
	theater.POST("", h.Theaters.Create, protect, adminOnly)
	theater.PUT("/:id", h.Theaters.Update, protect, adminOnly)
	theater.DELETE("/:id", h.Theaters.Delete, protect, adminOnly)

	movie := e.Group("/movie")
	movie.GET("", h.Movies.List, cache)
	movie.GET("/:id", h.Movies.Get, cache)
	movie.POST("", h.Movies.Create, protect, adminOnly)
	movie.PUT("/:id", h.Movies.Update, protect, adminOnly)
	movie.DELETE("/:id", h.Movies.Delete, protect, adminOnly)

	showtime := e.Group("/showtime")
	showtime.GET("", h.Showtimes.List, cache)
	showtime.GET("/:id", h.Showtimes.Get, cache)
	showtime.POST("", h.Showtimes.Create, protect, adminOnly)
	showtime.PUT("/:id", h.Showtimes.Update, protect, adminOnly)
	showtime.DELETE("/:id", h.Showtimes.Delete, protect, adminOnly)
	showtime.POST("/:id/purchase", h.Booking.Purchase, protect)
}
