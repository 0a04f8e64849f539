package weekly_plan

import (
	"context"
	"fmt"

	"github.com/klokku/recipebook/internal/event_bus"
	"github.com/klokku/recipebook/pkg/recipe"
	"github.com/klokku/recipebook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetPlan(ctx context.Context) (WeeklyPlan, error)
	// GetMealsForDay returns the day's meals, narrowed down to one meal type when mealType is not empty.
	GetMealsForDay(ctx context.Context, day Day, mealType string) ([]recipe.Recipe, error)
	// AddMeal fetches the recipe and appends it to the day. Planning a recipe twice is allowed.
	AddMeal(ctx context.Context, day Day, recipeId int) (recipe.Recipe, error)
	// RemoveMeal drops every occurrence of the recipe from the day and returns how many were dropped.
	RemoveMeal(ctx context.Context, day Day, recipeId int) (int, error)
	ClearDay(ctx context.Context, day Day) (int, error)
	ClearWeek(ctx context.Context) (int, error)
	GetNutrition(ctx context.Context) (NutritionTotals, error)
	GetStats(ctx context.Context) (Stats, error)
	// PlannedRecipes lists every planned recipe, Monday first.
	PlannedRecipes(ctx context.Context) ([]recipe.Recipe, error)
}

// RecipeReader resolves recipe ids to full recipes.
type RecipeReader interface {
	GetRecipe(ctx context.Context, id int) (recipe.Recipe, error)
}

type ServiceImpl struct {
	repo     Repository
	recipes  RecipeReader
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, recipes RecipeReader, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, recipes: recipes, eventBus: eventBus}
}

func (s *ServiceImpl) planner(ctx context.Context) (*Planner, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	plan, err := s.repo.GetPlan(ctx, userId)
	if err != nil {
		log.Errorf("failed to load weekly plan of user %d: %v", userId, err)
		return nil, fmt.Errorf("failed to load weekly plan: %w", err)
	}
	return NewPlanner(plan), nil
}

// modify loads the plan with the user's state locked, applies change and stores the result.
func (s *ServiceImpl) modify(ctx context.Context, change func(planner *Planner)) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.WithTransaction(ctx, func(repo Repository) error {
		plan, err := repo.GetPlan(ctx, userId)
		if err != nil {
			return fmt.Errorf("failed to load weekly plan: %w", err)
		}
		planner := NewPlanner(plan)
		change(planner)
		if err := repo.StorePlan(ctx, userId, planner.Snapshot()); err != nil {
			log.Errorf("failed to store weekly plan of user %d: %v", userId, err)
			return fmt.Errorf("failed to store weekly plan: %w", err)
		}
		return nil
	})
}

func (s *ServiceImpl) GetPlan(ctx context.Context) (WeeklyPlan, error) {
	planner, err := s.planner(ctx)
	if err != nil {
		return nil, err
	}
	return planner.Snapshot(), nil
}

func (s *ServiceImpl) GetMealsForDay(ctx context.Context, day Day, mealType string) ([]recipe.Recipe, error) {
	planner, err := s.planner(ctx)
	if err != nil {
		return nil, err
	}
	if mealType == "" {
		return planner.MealsForDay(day), nil
	}
	return planner.MealsForSlot(day, mealType), nil
}

func (s *ServiceImpl) AddMeal(ctx context.Context, day Day, recipeId int) (recipe.Recipe, error) {
	if !day.Valid() {
		return recipe.Recipe{}, ErrInvalidDay
	}
	meal, err := s.recipes.GetRecipe(ctx, recipeId)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to get recipe %d: %w", recipeId, err)
	}

	err = s.modify(ctx, func(planner *Planner) {
		planner.AddMeal(day, meal)
	})
	if err != nil {
		return recipe.Recipe{}, err
	}
	log.Debugf("planned recipe %d on %s", recipeId, day)

	s.publish(ctx, event_bus.MealPlannedType, event_bus.MealPlanned{Day: day.String(), RecipeId: meal.Id, Title: meal.Title})
	return meal, nil
}

func (s *ServiceImpl) RemoveMeal(ctx context.Context, day Day, recipeId int) (int, error) {
	removed := 0
	err := s.modify(ctx, func(planner *Planner) {
		removed = planner.RemoveMeal(day, recipeId)
	})
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.publish(ctx, event_bus.MealUnplannedType, event_bus.MealUnplanned{Day: day.String(), RecipeId: recipeId, Removed: removed})
	}
	return removed, nil
}

func (s *ServiceImpl) ClearDay(ctx context.Context, day Day) (int, error) {
	removed := 0
	err := s.modify(ctx, func(planner *Planner) {
		removed = planner.ClearDay(day)
	})
	if err != nil {
		return 0, err
	}
	s.publish(ctx, event_bus.MealPlanClearedType, event_bus.MealPlanCleared{Day: day.String(), Removed: removed})
	return removed, nil
}

func (s *ServiceImpl) ClearWeek(ctx context.Context) (int, error) {
	removed := 0
	err := s.modify(ctx, func(planner *Planner) {
		removed = planner.ClearWeek()
	})
	if err != nil {
		return 0, err
	}
	s.publish(ctx, event_bus.MealPlanClearedType, event_bus.MealPlanCleared{Removed: removed})
	return removed, nil
}

func (s *ServiceImpl) GetNutrition(ctx context.Context) (NutritionTotals, error) {
	planner, err := s.planner(ctx)
	if err != nil {
		return NutritionTotals{}, err
	}
	return planner.WeeklyNutrition(), nil
}

func (s *ServiceImpl) GetStats(ctx context.Context) (Stats, error) {
	planner, err := s.planner(ctx)
	if err != nil {
		return Stats{}, err
	}
	return planner.WeeklyStats(), nil
}

func (s *ServiceImpl) PlannedRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	planner, err := s.planner(ctx)
	if err != nil {
		return nil, err
	}
	return planner.Recipes(), nil
}

// publish is called after commit; a failing subscriber does not undo the change.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if err := event_bus.PublishTyped(ctx, s.eventBus, eventType, data); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
