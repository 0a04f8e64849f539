package favorites

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/recipebook/internal/rest"
	"github.com/klokku/recipebook/pkg/recipe"
	"github.com/klokku/recipebook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type FavoriteStatusDTO struct {
	RecipeId int  `json:"recipeId"`
	Favorite bool `json:"favorite"`
}

type RemovedDTO struct {
	Removed int `json:"removed"`
}

type addFavoriteRequest struct {
	RecipeId int `json:"recipeId" validate:"required,gt=0"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetFavorites godoc
// @Summary List favorite recipes
// @Description Favorites in the order they were added. With category only recipes having it as cuisine or dish type are returned.
// @Tags Favorites
// @Produce json
// @Param category query string false "Cuisine or dish type"
// @Success 200 {array} recipe.RecipeDTO
// @Failure 403 {string} string "User not found"
// @Router /api/favorites [get]
// @Security XUserId
func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	var favorites []recipe.Recipe
	var err error
	if category := r.URL.Query().Get("category"); category != "" {
		favorites, err = h.service.GetByCategory(r.Context(), category)
	} else {
		favorites, err = h.service.GetFavorites(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]recipe.RecipeDTO, 0, len(favorites))
	for _, favorite := range favorites {
		dtos = append(dtos, recipe.RecipeToDTO(favorite))
	}
	rest.WriteJSON(w, dtos)
}

// GetStats godoc
// @Summary Favorites statistics
// @Tags Favorites
// @Produce json
// @Success 200 {object} Stats
// @Router /api/favorites/stats [get]
// @Security XUserId
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, stats)
}

// IsFavorite godoc
// @Summary Check whether a recipe is a favorite
// @Tags Favorites
// @Produce json
// @Param recipeId path int true "Recipe ID"
// @Success 200 {object} FavoriteStatusDTO
// @Router /api/favorites/{recipeId} [get]
// @Security XUserId
func (h *Handler) IsFavorite(w http.ResponseWriter, r *http.Request) {
	recipeId, ok := recipe.RecipeIdFromPath(w, r)
	if !ok {
		return
	}
	isFavorite, err := h.service.IsFavorite(r.Context(), recipeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, FavoriteStatusDTO{RecipeId: recipeId, Favorite: isFavorite})
}

// AddFavorite godoc
// @Summary Add a recipe to favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param favorite body addFavoriteRequest true "Recipe to add"
// @Success 201 {object} recipe.RecipeDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {object} rest.ErrorResponse "Recipe not found"
// @Failure 409 {object} rest.ErrorResponse "Already a favorite"
// @Router /api/favorites [post]
// @Security XUserId
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var request addFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	if err := rest.ValidateStruct(request); err != nil {
		rest.WriteValidationError(w, err)
		return
	}

	favorite, err := h.service.AddFavorite(r.Context(), request.RecipeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(recipe.RecipeToDTO(favorite)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ToggleFavorite godoc
// @Summary Toggle a recipe's favorite status
// @Tags Favorites
// @Produce json
// @Param recipeId path int true "Recipe ID"
// @Success 200 {object} FavoriteStatusDTO
// @Failure 404 {object} rest.ErrorResponse "Recipe not found"
// @Router /api/favorites/{recipeId}/toggle [put]
// @Security XUserId
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	recipeId, ok := recipe.RecipeIdFromPath(w, r)
	if !ok {
		return
	}
	isFavorite, err := h.service.ToggleFavorite(r.Context(), recipeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, FavoriteStatusDTO{RecipeId: recipeId, Favorite: isFavorite})
}

// RemoveFavorite godoc
// @Summary Remove a recipe from favorites
// @Tags Favorites
// @Param recipeId path int true "Recipe ID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse "Not a favorite"
// @Router /api/favorites/{recipeId} [delete]
// @Security XUserId
func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	recipeId, ok := recipe.RecipeIdFromPath(w, r)
	if !ok {
		return
	}
	if err := h.service.RemoveFavorite(r.Context(), recipeId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearFavorites godoc
// @Summary Remove all favorites
// @Tags Favorites
// @Produce json
// @Success 200 {object} RemovedDTO
// @Router /api/favorites [delete]
// @Security XUserId
func (h *Handler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.ClearFavorites(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, RemovedDTO{Removed: removed})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if recipe.WriteFetchError(w, err) {
		return
	}
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "User not found", http.StatusForbidden)
	case errors.Is(err, ErrAlreadyFavorite):
		rest.WriteError(w, http.StatusConflict, "Already a favorite", err.Error())
	case errors.Is(err, ErrNotFavorite):
		rest.WriteError(w, http.StatusNotFound, "Not a favorite", err.Error())
	default:
		log.Errorf("favorites request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
