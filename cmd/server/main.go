package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hardikmakkar07/CineBooker/internal/config"
	"github.com/hardikmakkar07/CineBooker/internal/database"
	"github.com/hardikmakkar07/CineBooker/internal/handler"
	"github.com/hardikmakkar07/CineBooker/internal/queue"
	"github.com/hardikmakkar07/CineBooker/internal/repository"
	"github.com/hardikmakkar07/CineBooker/internal/router"
	queue_publisher "github.com/hardikmakkar07/CineBooker/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	rdb := config.NewRedisClient(cfg)
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tickets := repository.NewTicketRepo(db)
	cinemas := repository.NewCinemaRepo(db)
	theaters := repository.NewTheaterRepo(db)
	movies := repository.NewMovieRepo(db)
	showtimes := repository.NewShowtimeRepo(db)

	var publish func(context.Context, queue.TicketBookedEvent) error
	if cfg.AMQPURL != "" {
		url := cfg.AMQPURL
		publish = func(ctx context.Context, ev queue.TicketBookedEvent) error {
			return queue_publisher.PublishTicketBooked(ctx, url, ev)
		}
		go func() {
			if err := queue.StartTicketConsumer(url); err != nil {
				log.Printf("ticket consumer stopped: %v", err)
			}
		}()
	} else {
		log.Println("AMQP_URL not set; booking events disabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, rdb, users, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, tickets),
		Cinemas:   handler.NewCinemaHandler(cinemas),
		Theaters:  handler.NewTheaterHandler(theaters),
		Movies:    handler.NewMovieHandler(movies),
		Showtimes: handler.NewShowtimeHandler(showtimes),
		Booking:   handler.NewBookingHandler(showtimes, tickets, publish),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
