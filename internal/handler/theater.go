package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hardikmakkar07/CineBooker/internal/model"
	"github.com/hardikmakkar07/CineBooker/internal/repository"
)

// TheaterHandler exposes CRUD for theaters (screens inside a cinema).
type TheaterHandler struct {
	Theaters *repository.TheaterRepo
}

func NewTheaterHandler(theaters *repository.TheaterRepo) *TheaterHandler {
	return &TheaterHandler{Theaters: theaters}
}

type theaterReq struct {
	Cinema  uint64 `json:"cinema"`
	Number  int    `json:"number"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

func (b theaterReq) validate() string {
	switch {
	case b.Cinema == 0:
		return "Please add a cinema"
	case b.Number <= 0:
		return "Please add a theater number"
	case b.Rows <= 0 || b.Columns <= 0:
		return "Please add a valid seat plan"
	}
	return ""
}

// List supports an optional ?cinema=<id> filter.
func (h *TheaterHandler) List(c echo.Context) error {
	var cinemaID uint64
	if v := c.QueryParam("cinema"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "Invalid cinema id")
		}
		cinemaID = id
	}
	items, err := h.Theaters.List(c.Request().Context(), cinemaID)
	if err != nil {
		log.Printf("theaters: list failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving theaters")
	}
	return ok(c, http.StatusOK, echo.Map{"count": len(items), "data": items})
}

func (h *TheaterHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid theater id")
	}
	theater, err := h.Theaters.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Theater not found with id of "+c.Param("id"))
		}
		log.Printf("theaters: get %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving theater")
	}
	return ok(c, http.StatusOK, echo.Map{"data": theater})
}

func (h *TheaterHandler) Create(c echo.Context) error {
	var body theaterReq
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	theater, err := h.Theaters.Create(c.Request().Context(), model.Theater{
		CinemaID: body.Cinema, Number: body.Number, Rows: body.Rows, Columns: body.Columns,
	})
	if err != nil {
		log.Printf("theaters: create failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error creating theater")
	}
	return ok(c, http.StatusCreated, echo.Map{"data": theater})
}

func (h *TheaterHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid theater id")
	}
	var body theaterReq
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	theater, err := h.Theaters.Update(c.Request().Context(), id, model.Theater{
		CinemaID: body.Cinema, Number: body.Number, Rows: body.Rows, Columns: body.Columns,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Theater not found with id of "+c.Param("id"))
		}
		log.Printf("theaters: update %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error updating theater")
	}
	return ok(c, http.StatusOK, echo.Map{"data": theater})
}

func (h *TheaterHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid theater id")
	}
	if err := h.Theaters.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Theater not found with id of "+c.Param("id"))
		}
		log.Printf("theaters: delete %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error deleting theater")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Theater deleted successfully"})
}
