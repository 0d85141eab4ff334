package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hardikmakkar07/CineBooker/internal/middleware"
	"github.com/hardikmakkar07/CineBooker/internal/model"
	"github.com/hardikmakkar07/CineBooker/internal/queue"
	"github.com/hardikmakkar07/CineBooker/internal/repository"
)

// ShowtimeGetter looks up the showtime a purchase targets.
type ShowtimeGetter interface {
	GetByID(ctx context.Context, id uint64) (model.Showtime, error)
}

// TicketCreator records a purchase.
type TicketCreator interface {
	Create(ctx context.Context, userID, showtimeID uint64, seats []string) (uint64, error)
}

// BookingHandler records ticket purchases. It is the writer side of the
// ticket history that the auth endpoints read back expanded.
type BookingHandler struct {
	Showtimes ShowtimeGetter
	Tickets   TicketCreator

	// Publish sends the booked event to the broker. Nil disables
	// publishing; a publish failure never fails the purchase.
	Publish func(ctx context.Context, ev queue.TicketBookedEvent) error
}

func NewBookingHandler(showtimes ShowtimeGetter, tickets TicketCreator,
	publish func(ctx context.Context, ev queue.TicketBookedEvent) error) *BookingHandler {
	return &BookingHandler{Showtimes: showtimes, Tickets: tickets, Publish: publish}
}

// Purchase handles POST /showtime/:id/purchase for the authenticated user.
func (h *BookingHandler) Purchase(c echo.Context) error {
	u, ok2 := middleware.CurrentUser(c)
	if !ok2 {
		return fail(c, http.StatusUnauthorized, "Not authorized to access this route")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid showtime id")
	}

	var body struct {
		Seats []string `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	seats := make([]string, 0, len(body.Seats))
	for _, s := range body.Seats {
		if s = strings.TrimSpace(s); s != "" {
			seats = append(seats, s)
		}
	}
	if len(seats) == 0 {
		return fail(c, http.StatusBadRequest, "Please select at least one seat")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	showtime, err := h.Showtimes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Showtime not found with id of "+c.Param("id"))
		}
		log.Printf("purchase: showtime lookup failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error during purchase")
	}
	if !showtime.IsRelease {
		return fail(c, http.StatusBadRequest, "Tickets for this showtime are not on sale")
	}

	ticketID, err := h.Tickets.Create(ctx, u.ID, showtime.ID, seats)
	if err != nil {
		log.Printf("purchase: ticket create failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error during purchase")
	}

	if h.Publish != nil {
		ev := queue.TicketBookedEvent{
			TicketID:   ticketID,
			UserID:     u.ID,
			Username:   u.Username,
			ShowtimeID: showtime.ID,
			MovieID:    showtime.MovieID,
			StartsAt:   showtime.StartsAt.UTC().Format(time.RFC3339),
			Seats:      seats,
			BookedAt:   time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = h.Publish(pubCtx, ev)
		}()
	}

	return ok(c, http.StatusCreated, echo.Map{
		"data": echo.Map{
			"id":       ticketID,
			"showtime": showtime.ID,
			"seats":    seats,
		},
	})
}
