package shopping

import (
	"context"
	"fmt"
	"time"

	"github.com/klokku/recipebook/internal/utils"
	"github.com/klokku/recipebook/pkg/recipe"
	log "github.com/sirupsen/logrus"
)

type Source string

const (
	SourceMealPlan  Source = "mealplan"
	SourceFavorites Source = "favorites"
)

type ShoppingList struct {
	Source      Source
	GeneratedAt time.Time
	Items       []ShoppingListItem
}

// PlannedRecipesReader provides every recipe planned for the current user's week.
type PlannedRecipesReader interface {
	PlannedRecipes(ctx context.Context) ([]recipe.Recipe, error)
}

type FavoritesReader interface {
	GetFavorites(ctx context.Context) ([]recipe.Recipe, error)
}

type Service interface {
	// GetShoppingList consolidates the ingredients of the chosen source. Items named in checked
	// are marked as bought and the result is narrowed down by filter.
	GetShoppingList(ctx context.Context, source Source, checked []string, filter Filter) (ShoppingList, error)
}

type ServiceImpl struct {
	plan      PlannedRecipesReader
	favorites FavoritesReader
	clock     utils.Clock
}

func NewService(plan PlannedRecipesReader, favorites FavoritesReader, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{plan: plan, favorites: favorites, clock: clock}
}

func (s *ServiceImpl) GetShoppingList(ctx context.Context, source Source, checked []string, filter Filter) (ShoppingList, error) {
	var recipes []recipe.Recipe
	var err error
	switch source {
	case SourceMealPlan:
		recipes, err = s.plan.PlannedRecipes(ctx)
	case SourceFavorites:
		recipes, err = s.favorites.GetFavorites(ctx)
	default:
		return ShoppingList{}, fmt.Errorf("unknown shopping list source %q", source)
	}
	if err != nil {
		return ShoppingList{}, fmt.Errorf("failed to load recipes for shopping list: %w", err)
	}

	items := MarkChecked(Consolidate(recipes), checked)
	log.Debugf("shopping list from %s: %d recipes, %d items", source, len(recipes), len(items))

	return ShoppingList{
		Source:      source,
		GeneratedAt: s.clock.Now(),
		Items:       filter.Apply(items),
	}, nil
}
