package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hardikmakkar07/CineBooker/internal/model"
	"github.com/hardikmakkar07/CineBooker/internal/repository"
)

// ShowtimeHandler exposes CRUD for scheduled screenings.
type ShowtimeHandler struct {
	Showtimes *repository.ShowtimeRepo
}

func NewShowtimeHandler(showtimes *repository.ShowtimeRepo) *ShowtimeHandler {
	return &ShowtimeHandler{Showtimes: showtimes}
}

type showtimeReq struct {
	Theater   uint64    `json:"theater"`
	Movie     uint64    `json:"movie"`
	Showtime  time.Time `json:"showtime"`
	IsRelease bool      `json:"isRelease"`
}

func (b showtimeReq) validate() string {
	switch {
	case b.Theater == 0:
		return "Please add a theater"
	case b.Movie == 0:
		return "Please add a movie"
	case b.Showtime.IsZero():
		return "Please add a showtime"
	}
	return ""
}

// List supports ?movie= and ?theater= filters. Unreleased showtimes are
// visible only with ?unreleased=true, which the router exposes to admins.
func (h *ShowtimeHandler) List(c echo.Context) error {
	movieID, err := optionalID(c.QueryParam("movie"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid movie id")
	}
	theaterID, err := optionalID(c.QueryParam("theater"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid theater id")
	}
	includeUnreleased := c.QueryParam("unreleased") == "true"

	items, err := h.Showtimes.List(c.Request().Context(), movieID, theaterID, includeUnreleased)
	if err != nil {
		log.Printf("showtimes: list failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving showtimes")
	}
	return ok(c, http.StatusOK, echo.Map{"count": len(items), "data": items})
}

func (h *ShowtimeHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid showtime id")
	}
	showtime, err := h.Showtimes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Showtime not found with id of "+c.Param("id"))
		}
		log.Printf("showtimes: get %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving showtime")
	}
	return ok(c, http.StatusOK, echo.Map{"data": showtime})
}

func (h *ShowtimeHandler) Create(c echo.Context) error {
	var body showtimeReq
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	showtime, err := h.Showtimes.Create(c.Request().Context(), model.Showtime{
		TheaterID: body.Theater, MovieID: body.Movie, StartsAt: body.Showtime, IsRelease: body.IsRelease,
	})
	if err != nil {
		log.Printf("showtimes: create failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error creating showtime")
	}
	return ok(c, http.StatusCreated, echo.Map{"data": showtime})
}

func (h *ShowtimeHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid showtime id")
	}
	var body showtimeReq
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	showtime, err := h.Showtimes.Update(c.Request().Context(), id, model.Showtime{
		TheaterID: body.Theater, MovieID: body.Movie, StartsAt: body.Showtime, IsRelease: body.IsRelease,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Showtime not found with id of "+c.Param("id"))
		}
		log.Printf("showtimes: update %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error updating showtime")
	}
	return ok(c, http.StatusOK, echo.Map{"data": showtime})
}

func (h *ShowtimeHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid showtime id")
	}
	if err := h.Showtimes.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Showtime not found with id of "+c.Param("id"))
		}
		log.Printf("showtimes: delete %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error deleting showtime")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Showtime deleted successfully"})
}

func optionalID(v string) (uint64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseUint(v, 10, 64)
}
