package handler

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardikmakkar07/CineBooker/internal/model"
	"github.com/hardikmakkar07/CineBooker/internal/queue"
	"github.com/hardikmakkar07/CineBooker/internal/repository"
)

type stubShowtimes struct {
	getByID func(ctx context.Context, id uint64) (model.Showtime, error)
}

func (s *stubShowtimes) GetByID(ctx context.Context, id uint64) (model.Showtime, error) {
	if s.getByID == nil {
		return model.Showtime{}, repository.ErrNotFound
	}
	return s.getByID(ctx, id)
}

type stubTicketCreator struct {
	create func(ctx context.Context, userID, showtimeID uint64, seats []string) (uint64, error)
}

func (s *stubTicketCreator) Create(ctx context.Context, userID, showtimeID uint64, seats []string) (uint64, error) {
	if s.create == nil {
		return 1, nil
	}
	return s.create(ctx, userID, showtimeID, seats)
}

func releasedShowtime(id uint64) *stubShowtimes {
	return &stubShowtimes{getByID: func(_ context.Context, got uint64) (model.Showtime, error) {
		if got != id {
			return model.Showtime{}, repository.ErrNotFound
		}
		return model.Showtime{ID: id, TheaterID: 2, MovieID: 3,
			StartsAt: time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC), IsRelease: true}, nil
	}}
}

func purchaseSetup(showtimeID string) func(echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(showtimeID)
		asUser(model.User{ID: 7, Username: "alice", Role: model.RoleUser})(c)
	}
}

func TestPurchaseSuccess(t *testing.T) {
	tickets := &stubTicketCreator{
		create: func(_ context.Context, userID, showtimeID uint64, seats []string) (uint64, error) {
			assert.Equal(t, uint64(7), userID)
			assert.Equal(t, uint64(10), showtimeID)
			assert.Equal(t, []string{"A1", "A2"}, seats)
			return 55, nil
		},
	}

	var mu sync.Mutex
	var published *queue.TicketBookedEvent
	done := make(chan struct{})
	publish := func(_ context.Context, ev queue.TicketBookedEvent) error {
		mu.Lock()
		published = &ev
		mu.Unlock()
		close(done)
		return nil
	}
	h := NewBookingHandler(releasedShowtime(10), tickets, publish)

	rec := invoke(t, h.Purchase, http.MethodPost, "/showtime/10/purchase",
		`{"seats":[" A1","A2 ",""]}`, purchaseSetup("10"))

	require.Equal(t, http.StatusCreated, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(55), data["id"])
	assert.Equal(t, float64(10), data["showtime"])
	assert.Equal(t, []any{"A1", "A2"}, data["seats"].([]any))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("booked event was not published")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, uint64(55), published.TicketID)
	assert.Equal(t, "alice", published.Username)
	assert.Equal(t, uint64(3), published.MovieID)
}

func TestPurchaseNoSeats(t *testing.T) {
	h := NewBookingHandler(releasedShowtime(10), &stubTicketCreator{}, nil)

	rec := invoke(t, h.Purchase, http.MethodPost, "/showtime/10/purchase",
		`{"seats":["", "  "]}`, purchaseSetup("10"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please select at least one seat", decode(t, rec)["message"])
}

func TestPurchaseUnknownShowtime(t *testing.T) {
	h := NewBookingHandler(&stubShowtimes{}, &stubTicketCreator{}, nil)

	rec := invoke(t, h.Purchase, http.MethodPost, "/showtime/99/purchase",
		`{"seats":["A1"]}`, purchaseSetup("99"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Showtime not found with id of 99", decode(t, rec)["message"])
}

func TestPurchaseUnreleasedShowtime(t *testing.T) {
	showtimes := &stubShowtimes{getByID: func(context.Context, uint64) (model.Showtime, error) {
		return model.Showtime{ID: 10, IsRelease: false}, nil
	}}
	h := NewBookingHandler(showtimes, &stubTicketCreator{}, nil)

	rec := invoke(t, h.Purchase, http.MethodPost, "/showtime/10/purchase",
		`{"seats":["A1"]}`, purchaseSetup("10"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Tickets for this showtime are not on sale", decode(t, rec)["message"])
}

func TestPurchaseWithoutPublisher(t *testing.T) {
	h := NewBookingHandler(releasedShowtime(10), &stubTicketCreator{}, nil)

	rec := invoke(t, h.Purchase, http.MethodPost, "/showtime/10/purchase",
		`{"seats":["A1"]}`, purchaseSetup("10"))

	require.Equal(t, http.StatusCreated, rec.Code)
}
