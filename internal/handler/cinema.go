package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hardikmakkar07/CineBooker/internal/repository"
)

// CinemaHandler exposes CRUD for the cinema catalogue. Reads are public;
// writes sit behind the admin middleware in the router.
type CinemaHandler struct {
	Cinemas *repository.CinemaRepo
}

func NewCinemaHandler(cinemas *repository.CinemaRepo) *CinemaHandler {
	return &CinemaHandler{Cinemas: cinemas}
}

func (h *CinemaHandler) List(c echo.Context) error {
	items, err := h.Cinemas.List(c.Request().Context())
	if err != nil {
		log.Printf("cinemas: list failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving cinemas")
	}
	return ok(c, http.StatusOK, echo.Map{"count": len(items), "data": items})
}

func (h *CinemaHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid cinema id")
	}
	cinema, err := h.Cinemas.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Cinema not found with id of "+c.Param("id"))
		}
		log.Printf("cinemas: get %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving cinema")
	}
	return ok(c, http.StatusOK, echo.Map{"data": cinema})
}

func (h *CinemaHandler) Create(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return fail(c, http.StatusBadRequest, "Please add a name")
	}
	cinema, err := h.Cinemas.Create(c.Request().Context(), name)
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return fail(c, http.StatusBadRequest, dup.Error())
		}
		log.Printf("cinemas: create failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error creating cinema")
	}
	return ok(c, http.StatusCreated, echo.Map{"data": cinema})
}

func (h *CinemaHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid cinema id")
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return fail(c, http.StatusBadRequest, "Please add a name")
	}
	cinema, err := h.Cinemas.UpdateName(c.Request().Context(), id, name)
	if err != nil {
		var dup *repository.DuplicateError
		switch {
		case errors.As(err, &dup):
			return fail(c, http.StatusBadRequest, dup.Error())
		case errors.Is(err, repository.ErrNotFound):
			return fail(c, http.StatusNotFound, "Cinema not found with id of "+c.Param("id"))
		}
		log.Printf("cinemas: update %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error updating cinema")
	}
	return ok(c, http.StatusOK, echo.Map{"data": cinema})
}

func (h *CinemaHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid cinema id")
	}
	if err := h.Cinemas.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Cinema not found with id of "+c.Param("id"))
		}
		log.Printf("cinemas: delete %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error deleting cinema")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Cinema deleted successfully"})
}
