package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hardikmakkar07/CineBooker/internal/model"
	"github.com/hardikmakkar07/CineBooker/internal/repository"
)

// MovieHandler exposes CRUD for the movie catalogue.
type MovieHandler struct {
	Movies *repository.MovieRepo
}

func NewMovieHandler(movies *repository.MovieRepo) *MovieHandler {
	return &MovieHandler{Movies: movies}
}

type movieReq struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
	Img    string `json:"img"`
}

func (b movieReq) validate() string {
	var problems []string
	if strings.TrimSpace(b.Name) == "" {
		problems = append(problems, "Please add a name")
	}
	if b.Length <= 0 {
		problems = append(problems, "Please add a length in minutes")
	}
	return strings.Join(problems, ", ")
}

func (h *MovieHandler) List(c echo.Context) error {
	items, err := h.Movies.List(c.Request().Context())
	if err != nil {
		log.Printf("movies: list failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving movies")
	}
	return ok(c, http.StatusOK, echo.Map{"count": len(items), "data": items})
}

func (h *MovieHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid movie id")
	}
	movie, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Movie not found with id of "+c.Param("id"))
		}
		log.Printf("movies: get %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error retrieving movie")
	}
	return ok(c, http.StatusOK, echo.Map{"data": movie})
}

func (h *MovieHandler) Create(c echo.Context) error {
	var body movieReq
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	movie, err := h.Movies.Create(c.Request().Context(), model.Movie{
		Name: strings.TrimSpace(body.Name), Length: body.Length, Img: strings.TrimSpace(body.Img),
	})
	if err != nil {
		log.Printf("movies: create failed: %v", err)
		return fail(c, http.StatusInternalServerError, "Server error creating movie")
	}
	return ok(c, http.StatusCreated, echo.Map{"data": movie})
}

func (h *MovieHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid movie id")
	}
	var body movieReq
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	movie, err := h.Movies.Update(c.Request().Context(), id, model.Movie{
		Name: strings.TrimSpace(body.Name), Length: body.Length, Img: strings.TrimSpace(body.Img),
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Movie not found with id of "+c.Param("id"))
		}
		log.Printf("movies: update %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error updating movie")
	}
	return ok(c, http.StatusOK, echo.Map{"data": movie})
}

func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid movie id")
	}
	if err := h.Movies.DeleteByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "Movie not found with id of "+c.Param("id"))
		}
		log.Printf("movies: delete %d failed: %v", id, err)
		return fail(c, http.StatusInternalServerError, "Server error deleting movie")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "Movie deleted successfully"})
}
