package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"myflix/internal/api/middleware"
	"myflix/internal/app/service"
	"myflix/internal/common"
)

type MovieHandler struct {
	movieService *service.MovieService
}

func NewMovieHandler(movieService *service.MovieService) *MovieHandler {
	return &MovieHandler{movieService: movieService}
}

func (h *MovieHandler) RegisterRoutes(r chi.Router) {
	// The full catalog listing predates auth and stays public.
	r.Get("/", h.list)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Get("/genre/{name}", h.listByGenre)
		protected.Get("/director/{name}", h.getDirector)
		protected.Get("/{title}", h.getByTitle)
		protected.Post("/", h.create)
		protected.Delete("/{movieID}", h.delete)
	})
}

func (h *MovieHandler) list(w http.ResponseWriter, r *http.Request) {
	movies, err := h.movieService.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, movies)
}

func (h *MovieHandler) getByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	movie, err := h.movieService.GetByTitle(r.Context(), title)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) listByGenre(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	movies, err := h.movieService.ListByGenre(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, movies)
}

func (h *MovieHandler) getDirector(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	director, err := h.movieService.GetDirector(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, director)
}

func (h *MovieHandler) create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	movie, err := h.movieService.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, movie)
}

func (h *MovieHandler) delete(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieID")

	if err := h.movieService.Delete(r.Context(), movieID); err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Movie was deleted"})
}
