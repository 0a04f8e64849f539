package favorites

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/klokku/recipebook/internal/test_utils"
	"github.com/klokku/recipebook/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*mux.Router, serviceFixture) {
	t.Helper()
	f := setupService(t)
	handler := NewHandler(f.service)
	r := mux.NewRouter()
	r.HandleFunc("/api/favorites", handler.GetFavorites).Methods("GET")
	r.HandleFunc("/api/favorites", handler.AddFavorite).Methods("POST")
	r.HandleFunc("/api/favorites", handler.ClearFavorites).Methods("DELETE")
	r.HandleFunc("/api/favorites/stats", handler.GetStats).Methods("GET")
	r.HandleFunc("/api/favorites/{recipeId}", handler.IsFavorite).Methods("GET")
	r.HandleFunc("/api/favorites/{recipeId}", handler.RemoveFavorite).Methods("DELETE")
	r.HandleFunc("/api/favorites/{recipeId}/toggle", handler.ToggleFavorite).Methods("PUT")
	return r, f
}

func serve(r http.Handler, method string, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(test_utils.TestUserContext(10))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_AddFavorite(t *testing.T) {
	r, _ := setupRouter(t)

	rec := serve(r, "POST", "/api/favorites", `{"recipeId": 1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var dto recipe.RecipeDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "Pancakes", dto.Title)

	assert.Equal(t, http.StatusConflict, serve(r, "POST", "/api/favorites", `{"recipeId": 1}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(r, "POST", "/api/favorites", `{"recipeId": 404}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "POST", "/api/favorites", `{"recipeId": 0}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "POST", "/api/favorites", `not json`).Code)
}

func TestHandler_GetFavorites(t *testing.T) {
	r, _ := setupRouter(t)
	serve(r, "POST", "/api/favorites", `{"recipeId": 1}`)
	serve(r, "POST", "/api/favorites", `{"recipeId": 2}`)

	t.Run("lists all favorites", func(t *testing.T) {
		rec := serve(r, "GET", "/api/favorites", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var dtos []recipe.RecipeDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dtos))
		require.Len(t, dtos, 2)
		assert.Equal(t, "Pancakes", dtos[0].Title)
	})

	t.Run("filters by category", func(t *testing.T) {
		rec := serve(r, "GET", "/api/favorites?category=Italian", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var dtos []recipe.RecipeDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dtos))
		require.Len(t, dtos, 1)
		assert.Equal(t, "Risotto", dtos[0].Title)
	})

	t.Run("returns stats", func(t *testing.T) {
		rec := serve(r, "GET", "/api/favorites/stats", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var stats Stats
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&stats))
		assert.Equal(t, 2, stats.Total)
	})

	t.Run("403 without user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/favorites", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestHandler_ToggleAndRemove(t *testing.T) {
	r, _ := setupRouter(t)

	rec := serve(r, "PUT", "/api/favorites/2/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var status FavoriteStatusDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, FavoriteStatusDTO{RecipeId: 2, Favorite: true}, status)

	rec = serve(r, "GET", "/api/favorites/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.True(t, status.Favorite)

	assert.Equal(t, http.StatusNoContent, serve(r, "DELETE", "/api/favorites/2", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, "DELETE", "/api/favorites/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(r, "DELETE", "/api/favorites/abc", "").Code)
}

func TestHandler_ClearFavorites(t *testing.T) {
	r, _ := setupRouter(t)
	serve(r, "POST", "/api/favorites", `{"recipeId": 1}`)

	rec := serve(r, "DELETE", "/api/favorites", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var removed RemovedDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&removed))
	assert.Equal(t, 1, removed.Removed)
}
