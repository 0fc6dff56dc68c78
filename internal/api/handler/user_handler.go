package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"myflix/internal/api/middleware"
	"myflix/internal/app/service"
	"myflix/internal/common"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes mounts the account routes under /users/{username}.
// The caller applies Authenticator; RequireSelf scopes every
// operation here to the token's own account.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.RequireSelf)
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Delete("/", h.delete)
	r.Post("/movies/{movieID}", h.addFavorite)
	r.Delete("/favoriteMovies/{movieID}", h.removeFavorite)
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userService.Get(r.Context(), username)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), username, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if err := h.userService.Delete(r.Context(), username); err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: username + " was deleted."})
}

func (h *UserHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	movieID := chi.URLParam(r, "movieID")

	user, err := h.userService.AddFavorite(r.Context(), username, movieID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	movieID := chi.URLParam(r, "movieID")

	if _, err := h.userService.RemoveFavorite(r.Context(), username, movieID); err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, MessageResponse{Message: "Movie was removed from favorites"})
}
