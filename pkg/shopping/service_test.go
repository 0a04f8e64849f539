package shopping

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klokku/recipebook/internal/utils"
	"github.com/klokku/recipebook/pkg/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recipesStub struct {
	recipes []recipe.Recipe
	err     error
}

func (s *recipesStub) PlannedRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	return s.recipes, s.err
}

func (s *recipesStub) GetFavorites(ctx context.Context) ([]recipe.Recipe, error) {
	return s.recipes, s.err
}

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*ServiceImpl, *recipesStub, *recipesStub) {
	t.Helper()
	plan := &recipesStub{}
	favorites := &recipesStub{}
	return NewService(plan, favorites, utils.NewFixedClock(now)), plan, favorites
}

func TestServiceImpl_GetShoppingList(t *testing.T) {
	ctx := context.Background()

	t.Run("builds list from meal plan", func(t *testing.T) {
		service, plan, _ := setupService(t)
		plan.recipes = []recipe.Recipe{
			recipeWith(recipe.Ingredient{Name: "Rice", Amount: 100, Unit: "g"}),
			recipeWith(recipe.Ingredient{Name: "rice", Amount: 150, Unit: "g"}),
		}

		list, err := service.GetShoppingList(ctx, SourceMealPlan, nil, FilterAll)

		require.NoError(t, err)
		assert.Equal(t, SourceMealPlan, list.Source)
		assert.Equal(t, now, list.GeneratedAt)
		assert.Equal(t, []ShoppingListItem{{Ingredient: "rice", Amount: 250, Unit: "g"}}, list.Items)
	})

	t.Run("builds list from favorites with checked filter", func(t *testing.T) {
		service, _, favorites := setupService(t)
		favorites.recipes = []recipe.Recipe{recipeWith(
			recipe.Ingredient{Name: "Basil", Amount: 1, Unit: "bunch"},
			recipe.Ingredient{Name: "Tomato", Amount: 4},
		)}

		list, err := service.GetShoppingList(ctx, SourceFavorites, []string{"basil"}, FilterPending)

		require.NoError(t, err)
		require.Len(t, list.Items, 1)
		assert.Equal(t, "tomato", list.Items[0].Ingredient)
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.GetShoppingList(ctx, "pantry", nil, FilterAll)

		assert.Error(t, err)
	})

	t.Run("propagates reader errors", func(t *testing.T) {
		service, plan, _ := setupService(t)
		plan.err = errors.New("db down")

		_, err := service.GetShoppingList(ctx, SourceMealPlan, nil, FilterAll)

		assert.ErrorContains(t, err, "db down")
	})
}

func TestHandler_GetShoppingList(t *testing.T) {
	service, plan, _ := setupService(t)
	plan.recipes = []recipe.Recipe{
		recipeWith(recipe.Ingredient{Name: "Flour", Amount: 200, Unit: "g"}),
		recipeWith(recipe.Ingredient{Name: "Flour", Amount: 1, Unit: "cup"}, recipe.Ingredient{Name: "Milk", Amount: 0.5, Unit: "cup"}),
	}
	handler := NewHandler(service, NewCsvRenderer())

	get := func(target string, accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", target, nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		rec := httptest.NewRecorder()
		handler.GetShoppingList(rec, req)
		return rec
	}

	t.Run("json by default", func(t *testing.T) {
		rec := get("/api/shoppinglist?checked=milk", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var dto ShoppingListDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, "mealplan", dto.Source)
		assert.Equal(t, 2, dto.Total)
		assert.Equal(t, ShoppingListItemDTO{Ingredient: "flour", Amount: 201, Unit: "g"}, dto.Items[0])
		assert.True(t, dto.Items[1].Checked)
	})

	t.Run("csv export", func(t *testing.T) {
		rec := get("/api/shoppinglist", "text/csv")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		assert.Equal(t, []string{"Ingredient,Amount,Unit,Checked", "flour,201,g,", "milk,0.5,cup,"}, lines)
	})

	t.Run("share text", func(t *testing.T) {
		rec := get("/api/shoppinglist?filter=pending&checked=flour", "text/plain")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "□ 0.5 cup milk", rec.Body.String())
	})

	t.Run("invalid filter", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get("/api/shoppinglist?filter=bought", "").Code)
	})

	t.Run("invalid source", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get("/api/shoppinglist?source=pantry", "").Code)
	})
}
