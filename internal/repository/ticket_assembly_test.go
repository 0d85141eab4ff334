package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardikmakkar07/CineBooker/internal/model"
)

func fixtures() (map[uint64]model.Showtime, map[uint64]model.Movie, map[uint64]model.Theater, map[uint64]model.CinemaRef) {
	showtimes := map[uint64]model.Showtime{
		10: {ID: 10, TheaterID: 20, MovieID: 30, StartsAt: time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC), IsRelease: true},
	}
	movies := map[uint64]model.Movie{30: {ID: 30, Name: "Heat", Length: 170}}
	theaters := map[uint64]model.Theater{20: {ID: 20, CinemaID: 40, Number: 3}}
	cinemas := map[uint64]model.CinemaRef{40: {ID: 40, Name: "Grand Central"}}
	return showtimes, movies, theaters, cinemas
}

func TestAssembleTicketFullChain(t *testing.T) {
	showtimes, movies, theaters, cinemas := fixtures()
	ticket := ticketRow{ID: 1, UserID: 5, ShowtimeID: 10, Seats: []string{"A1", "A2"}}

	view := assembleTicket(ticket, showtimes, movies, theaters, cinemas)

	require.NotNil(t, view.Showtime)
	assert.Equal(t, uint64(10), view.Showtime.ID)
	assert.True(t, view.Showtime.IsRelease)
	require.NotNil(t, view.Showtime.Movie)
	assert.Equal(t, "Heat", view.Showtime.Movie.Name)
	require.NotNil(t, view.Showtime.Theater)
	assert.Equal(t, 3, view.Showtime.Theater.Number)
	require.NotNil(t, view.Showtime.Theater.Cinema)
	assert.Equal(t, "Grand Central", view.Showtime.Theater.Cinema.Name)
	assert.Equal(t, []string{"A1", "A2"}, view.Seats)
}

func TestAssembleTicketDeletedShowtime(t *testing.T) {
	_, movies, theaters, cinemas := fixtures()
	ticket := ticketRow{ID: 1, UserID: 5, ShowtimeID: 99, Seats: []string{"B4"}}

	view := assembleTicket(ticket, map[uint64]model.Showtime{}, movies, theaters, cinemas)

	assert.Nil(t, view.Showtime)
	assert.Equal(t, uint64(1), view.ID)
	assert.Equal(t, []string{"B4"}, view.Seats)
}

func TestAssembleTicketDeletedMovie(t *testing.T) {
	showtimes, _, theaters, cinemas := fixtures()
	ticket := ticketRow{ID: 2, UserID: 5, ShowtimeID: 10}

	view := assembleTicket(ticket, showtimes, map[uint64]model.Movie{}, theaters, cinemas)

	require.NotNil(t, view.Showtime)
	assert.Nil(t, view.Showtime.Movie)
	require.NotNil(t, view.Showtime.Theater)
}

func TestAssembleTicketDeletedTheater(t *testing.T) {
	showtimes, movies, _, cinemas := fixtures()
	ticket := ticketRow{ID: 3, UserID: 5, ShowtimeID: 10}

	view := assembleTicket(ticket, showtimes, movies, map[uint64]model.Theater{}, cinemas)

	require.NotNil(t, view.Showtime)
	assert.Nil(t, view.Showtime.Theater)
	require.NotNil(t, view.Showtime.Movie)
}

func TestAssembleTicketDeletedCinema(t *testing.T) {
	showtimes, movies, theaters, _ := fixtures()
	ticket := ticketRow{ID: 4, UserID: 5, ShowtimeID: 10}

	view := assembleTicket(ticket, showtimes, movies, theaters, map[uint64]model.CinemaRef{})

	require.NotNil(t, view.Showtime)
	require.NotNil(t, view.Showtime.Theater)
	assert.Nil(t, view.Showtime.Theater.Cinema)
}

func TestAssembleTicketNilSeats(t *testing.T) {
	showtimes, movies, theaters, cinemas := fixtures()
	view := assembleTicket(ticketRow{ID: 5, ShowtimeID: 10}, showtimes, movies, theaters, cinemas)

	// Serializes as [] rather than null.
	require.NotNil(t, view.Seats)
	assert.Empty(t, view.Seats)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []uint64{3, 1, 2}, dedupe([]uint64{3, 1, 3, 2, 1}))
	assert.Nil(t, dedupe(nil))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}
