package weekly_plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klokku/recipebook/internal/event_bus"
	"github.com/klokku/recipebook/internal/test_utils"
	"github.com/klokku/recipebook/pkg/recipe"
	"github.com/klokku/recipebook/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	ctx      context.Context
	service  *ServiceImpl
	repo     *RepositoryStub
	client   *recipe.ClientStub
	eventBus *event_bus.EventBus
}

func setupService(t *testing.T) serviceFixture {
	t.Helper()
	client := recipe.NewClientStub()
	client.AddRecipe(recipe.Recipe{Id: 1, Title: "Pancakes", Servings: 2, ReadyInMinutes: 30, Cuisines: []string{"American"},
		DishTypes: []string{"breakfast"}, Nutrition: &recipe.NutritionInfo{Calories: "350", Protein: "8g"}})
	client.AddRecipe(recipe.Recipe{Id: 2, Title: "Tacos", Servings: 4, ReadyInMinutes: 40, Cuisines: []string{"Mexican"},
		DishTypes: []string{"dinner"}, Nutrition: &recipe.NutritionInfo{Calories: "500", Fat: "20g"}})
	repo := NewRepositoryStub()
	eventBus := event_bus.NewEventBus()
	return serviceFixture{
		ctx:      test_utils.TestUserContext(10),
		service:  NewService(repo, recipe.NewService(client, 16, time.Minute), eventBus),
		repo:     repo,
		client:   client,
		eventBus: eventBus,
	}
}

func TestServiceImpl_AddMeal(t *testing.T) {
	t.Run("stores the fetched recipe and publishes an event", func(t *testing.T) {
		f := setupService(t)
		var published []event_bus.MealPlanned
		event_bus.SubscribeTyped(f.eventBus, event_bus.MealPlannedType, func(e event_bus.EventT[event_bus.MealPlanned]) error {
			published = append(published, e.Data)
			return nil
		})

		added, err := f.service.AddMeal(f.ctx, Monday, 1)

		require.NoError(t, err)
		assert.Equal(t, "Pancakes", added.Title)
		meals, err := f.service.GetMealsForDay(f.ctx, Monday, "")
		require.NoError(t, err)
		require.Len(t, meals, 1)
		assert.Equal(t, 1, meals[0].Id)
		assert.Equal(t, []event_bus.MealPlanned{{Day: "Monday", RecipeId: 1, Title: "Pancakes"}}, published)
	})

	t.Run("plans are kept per user", func(t *testing.T) {
		f := setupService(t)
		other := test_utils.TestUserContext(11)

		_, err := f.service.AddMeal(f.ctx, Monday, 1)
		require.NoError(t, err)

		meals, err := f.service.GetMealsForDay(other, Monday, "")
		require.NoError(t, err)
		assert.Empty(t, meals)
	})

	t.Run("unknown recipe is not planned", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.AddMeal(f.ctx, Monday, 404)

		require.ErrorIs(t, err, recipe.ErrRecipeNotFound)
		plan, err := f.service.GetPlan(f.ctx)
		require.NoError(t, err)
		assert.Equal(t, NewWeeklyPlan(), plan)
	})

	t.Run("store failure leaves the plan unchanged", func(t *testing.T) {
		f := setupService(t)
		_, err := f.service.AddMeal(f.ctx, Monday, 1)
		require.NoError(t, err)
		f.repo.SetStoreError(errors.New("disk full"))

		_, err = f.service.AddMeal(f.ctx, Monday, 2)

		require.Error(t, err)
		f.repo.SetStoreError(nil)
		meals, err := f.service.GetMealsForDay(f.ctx, Monday, "")
		require.NoError(t, err)
		assert.Len(t, meals, 1)
	})

	t.Run("requires a user", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.AddMeal(context.Background(), Monday, 1)

		assert.ErrorIs(t, err, user.ErrNoUser)
	})

	t.Run("rejects invalid day", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.AddMeal(f.ctx, Day(7), 1)

		assert.ErrorIs(t, err, ErrInvalidDay)
	})
}

func TestServiceImpl_RemoveMeal(t *testing.T) {
	f := setupService(t)
	var events []event_bus.MealUnplanned
	event_bus.SubscribeTyped(f.eventBus, event_bus.MealUnplannedType, func(e event_bus.EventT[event_bus.MealUnplanned]) error {
		events = append(events, e.Data)
		return nil
	})
	for _, id := range []int{1, 2, 1} {
		_, err := f.service.AddMeal(f.ctx, Wednesday, id)
		require.NoError(t, err)
	}

	removed, err := f.service.RemoveMeal(f.ctx, Wednesday, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = f.service.RemoveMeal(f.ctx, Wednesday, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	meals, err := f.service.GetMealsForDay(f.ctx, Wednesday, "")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, 2, meals[0].Id)
	assert.Equal(t, []event_bus.MealUnplanned{{Day: "Wednesday", RecipeId: 1, Removed: 2}}, events)
}

func TestServiceImpl_Clear(t *testing.T) {
	f := setupService(t)
	var cleared []event_bus.MealPlanCleared
	event_bus.SubscribeTyped(f.eventBus, event_bus.MealPlanClearedType, func(e event_bus.EventT[event_bus.MealPlanCleared]) error {
		cleared = append(cleared, e.Data)
		return nil
	})
	_, err := f.service.AddMeal(f.ctx, Monday, 1)
	require.NoError(t, err)
	_, err = f.service.AddMeal(f.ctx, Monday, 2)
	require.NoError(t, err)
	_, err = f.service.AddMeal(f.ctx, Friday, 2)
	require.NoError(t, err)

	removed, err := f.service.ClearDay(f.ctx, Monday)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = f.service.ClearWeek(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	stats, err := f.service.GetStats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
	assert.Equal(t, []event_bus.MealPlanCleared{{Day: "Monday", Removed: 2}, {Day: "", Removed: 1}}, cleared)
}

func TestServiceImpl_Aggregates(t *testing.T) {
	f := setupService(t)
	_, err := f.service.AddMeal(f.ctx, Monday, 1)
	require.NoError(t, err)
	_, err = f.service.AddMeal(f.ctx, Tuesday, 2)
	require.NoError(t, err)

	stats, err := f.service.GetStats(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalMeals: 2, TotalCookTime: 70, AverageCookTimePerDay: 10, CuisineVariety: 2}, stats)

	nutrition, err := f.service.GetNutrition(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, NutritionTotals{Calories: 850, Protein: 8, Fat: 20}, nutrition)

	breakfast, err := f.service.GetMealsForDay(f.ctx, Monday, "Breakfast")
	require.NoError(t, err)
	assert.Len(t, breakfast, 1)
	dinner, err := f.service.GetMealsForDay(f.ctx, Monday, "Dinner")
	require.NoError(t, err)
	assert.Empty(t, dinner)

	planned, err := f.service.PlannedRecipes(f.ctx)
	require.NoError(t, err)
	require.Len(t, planned, 2)
	assert.Equal(t, "Pancakes", planned[0].Title)
	assert.Equal(t, "Tacos", planned[1].Title)
}
