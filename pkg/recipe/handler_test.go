package recipe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/recipebook/internal/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*mux.Router, *ClientStub) {
	t.Helper()
	client := NewClientStub()
	handler := NewHandler(NewService(client, 16, time.Minute))
	r := mux.NewRouter()
	r.HandleFunc("/api/recipe/search", handler.Search).Methods("GET")
	r.HandleFunc("/api/recipe/random", handler.Random).Methods("GET")
	r.HandleFunc("/api/recipe/filters", handler.Filters).Methods("GET")
	r.HandleFunc("/api/recipe/{recipeId}", handler.GetRecipe).Methods("GET")
	r.HandleFunc("/api/recipe/{recipeId}/scaled", handler.GetScaled).Methods("GET")
	r.HandleFunc("/api/recipe/{recipeId}/nutrition", handler.GetNutrition).Methods("GET")
	return r, client
}

func serve(r http.Handler, method string, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestHandler_GetScaled(t *testing.T) {
	r, client := setupRouter(t)
	client.AddRecipe(Recipe{
		Id:          10,
		Title:       "Bread",
		Servings:    2,
		Ingredients: []Ingredient{{Id: 1, Name: "Flour", Amount: 500, Unit: "g"}},
	})

	t.Run("scales to requested servings", func(t *testing.T) {
		rec := serve(r, "GET", "/api/recipe/10/scaled?servings=3")

		require.Equal(t, http.StatusOK, rec.Code)
		var dto RecipeDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, 3, dto.Servings)
		assert.Equal(t, 750.0, dto.Ingredients[0].Amount)
	})

	for _, servings := range []string{"0", "100", "-1"} {
		t.Run("rejects servings "+servings, func(t *testing.T) {
			rec := serve(r, "GET", "/api/recipe/10/scaled?servings="+servings)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body rest.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Contains(t, body.Fields, "servings")
		})
	}

	t.Run("rejects non numeric servings", func(t *testing.T) {
		rec := serve(r, "GET", "/api/recipe/10/scaled?servings=many")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetRecipe(t *testing.T) {
	r, client := setupRouter(t)
	client.AddRecipe(Recipe{Id: 5, Title: "Stew", Servings: 4, ReadyInMinutes: 90})

	t.Run("returns recipe with formatted time", func(t *testing.T) {
		rec := serve(r, "GET", "/api/recipe/5")

		require.Equal(t, http.StatusOK, rec.Code)
		var dto RecipeDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, "Stew", dto.Title)
		assert.Equal(t, "1 hr 30 min", dto.ReadyIn)
	})

	t.Run("404 for unknown recipe", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(r, "GET", "/api/recipe/6").Code)
	})

	t.Run("400 for invalid id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(r, "GET", "/api/recipe/abc").Code)
	})

	t.Run("429 when rate limited", func(t *testing.T) {
		client.SetError(ErrRateLimited)
		defer client.SetError(nil)

		assert.Equal(t, http.StatusTooManyRequests, serve(r, "GET", "/api/recipe/77").Code)
	})
}

func TestHandler_Search(t *testing.T) {
	r, client := setupRouter(t)
	client.AddRecipe(Recipe{Id: 1, Title: "Quick Salad", ReadyInMinutes: 10})
	client.AddRecipe(Recipe{Id: 2, Title: "Slow Roast", ReadyInMinutes: 240})

	t.Run("applies default max ready time", func(t *testing.T) {
		rec := serve(r, "GET", "/api/recipe/search?query=food")

		require.Equal(t, http.StatusOK, rec.Code)
		var dto SearchResultDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		require.Len(t, dto.Results, 1)
		assert.Equal(t, "Quick Salad", dto.Results[0].Title)
		assert.Equal(t, DefaultPageSize, client.LastSearch.Number)
		assert.Equal(t, "popularity", client.LastSearch.Sort)
	})

	t.Run("empty query does not hit the API", func(t *testing.T) {
		before := client.CallCount("Search")

		rec := serve(r, "GET", "/api/recipe/search?cuisine=Italian")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, before, client.CallCount("Search"))
	})

	t.Run("rejects unknown sort", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(r, "GET", "/api/recipe/search?query=x&sort=alphabetical").Code)
	})

	t.Run("rejects non numeric max ready time", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(r, "GET", "/api/recipe/search?query=x&maxReadyTime=soon").Code)
	})
}

func TestHandler_Filters(t *testing.T) {
	r, _ := setupRouter(t)

	rec := serve(r, "GET", "/api/recipe/filters")

	require.Equal(t, http.StatusOK, rec.Code)
	var dto FiltersDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, []string{"Breakfast", "Lunch", "Dinner", "Snack"}, dto.MealTypes)
	assert.Len(t, dto.Cuisines, 26)
	assert.Len(t, dto.SortOptions, 5)
}

func TestHandler_GetNutrition(t *testing.T) {
	r, client := setupRouter(t)
	client.AddRecipe(Recipe{Id: 8, Servings: 1})
	client.SetNutrition(8, NutritionInfo{Calories: "316.4", Protein: "3.6g", Carbs: "49g", Fat: "12g"})

	rec := serve(r, "GET", "/api/recipe/8/nutrition")

	require.Equal(t, http.StatusOK, rec.Code)
	var dto NutritionDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, "316.4", dto.Calories)
	assert.Equal(t, "316", dto.Display.Calories)
	assert.Equal(t, "4g", dto.Display.Protein)
}
