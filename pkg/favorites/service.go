package favorites

import (
	"context"
	"fmt"

	"github.com/klokku/recipebook/internal/event_bus"
	"github.com/klokku/recipebook/pkg/recipe"
	"github.com/klokku/recipebook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetFavorites(ctx context.Context) ([]recipe.Recipe, error)
	GetByCategory(ctx context.Context, category string) ([]recipe.Recipe, error)
	IsFavorite(ctx context.Context, recipeId int) (bool, error)
	// AddFavorite fetches the recipe and appends it. Adding a recipe twice fails with ErrAlreadyFavorite.
	AddFavorite(ctx context.Context, recipeId int) (recipe.Recipe, error)
	RemoveFavorite(ctx context.Context, recipeId int) error
	// ToggleFavorite removes the recipe when it is a favorite and adds it otherwise.
	// It reports whether the recipe is a favorite afterwards.
	ToggleFavorite(ctx context.Context, recipeId int) (bool, error)
	ClearFavorites(ctx context.Context) (int, error)
	GetStats(ctx context.Context) (Stats, error)
}

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

func (s *ServiceImpl) load(ctx context.Context) (Favorites, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	favorites, err := s.repo.GetFavorites(ctx, userId)
	if err != nil {
		log.Errorf("failed to load favorites of user %d: %v", userId, err)
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return favorites, nil
}

// modify loads the favorites with the user's state locked, applies change and stores the result.
// Nothing is stored when change fails.
func (s *ServiceImpl) modify(ctx context.Context, change func(favorites Favorites) (Favorites, error)) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.WithTransaction(ctx, func(repo Repository) error {
		favorites, err := repo.GetFavorites(ctx, userId)
		if err != nil {
			return fmt.Errorf("failed to load favorites: %w", err)
		}
		changed, err := change(favorites)
		if err != nil {
			return err
		}
		if err := repo.StoreFavorites(ctx, userId, changed); err != nil {
			log.Errorf("failed to store favorites of user %d: %v", userId, err)
			return fmt.Errorf("failed to store favorites: %w", err)
		}
		return nil
	})
}

// GetFavorites implements shopping.FavoritesReader.
func (s *ServiceImpl) GetFavorites(ctx context.Context) ([]recipe.Recipe, error) {
	favorites, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (s *ServiceImpl) GetByCategory(ctx context.Context, category string) ([]recipe.Recipe, error) {
	favorites, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return favorites.ByCategory(category), nil
}

func (s *ServiceImpl) IsFavorite(ctx context.Context, recipeId int) (bool, error) {
	favorites, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return favorites.Contains(recipeId), nil
}

func (s *ServiceImpl) AddFavorite(ctx context.Context, recipeId int) (recipe.Recipe, error) {
	current, err := s.load(ctx)
	if err != nil {
		return recipe.Recipe{}, err
	}
	if current.Contains(recipeId) {
		return recipe.Recipe{}, ErrAlreadyFavorite
	}
	favorite, err := s.recipes.GetRecipe(ctx, recipeId)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("failed to get recipe %d: %w", recipeId, err)
	}

	err = s.modify(ctx, func(favorites Favorites) (Favorites, error) {
		return favorites.Add(favorite)
	})
	if err != nil {
		return recipe.Recipe{}, err
	}
	log.Debugf("added recipe %d to favorites", recipeId)

	s.publish(ctx, event_bus.FavoriteAddedType, event_bus.FavoriteAdded{RecipeId: favorite.Id, Title: favorite.Title})
	return favorite, nil
}

func (s *ServiceImpl) RemoveFavorite(ctx context.Context, recipeId int) error {
	err := s.modify(ctx, func(favorites Favorites) (Favorites, error) {
		return favorites.Remove(recipeId)
	})
	if err != nil {
		return err
	}
	s.publish(ctx, event_bus.FavoriteRemovedType, event_bus.FavoriteRemoved{RecipeId: recipeId})
	return nil
}

func (s *ServiceImpl) ToggleFavorite(ctx context.Context, recipeId int) (bool, error) {
	isFavorite, err := s.IsFavorite(ctx, recipeId)
	if err != nil {
		return false, err
	}
	if isFavorite {
		return false, s.RemoveFavorite(ctx, recipeId)
	}
	if _, err := s.AddFavorite(ctx, recipeId); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ServiceImpl) ClearFavorites(ctx context.Context) (int, error) {
	removed := 0
	err := s.modify(ctx, func(favorites Favorites) (Favorites, error) {
		removed = len(favorites)
		return Favorites{}, nil
	})
	if err != nil {
		return 0, err
	}
	s.publish(ctx, event_bus.FavoritesClearedType, event_bus.FavoritesCleared{Count: removed})
	return removed, nil
}

func (s *ServiceImpl) GetStats(ctx context.Context) (Stats, error) {
	favorites, err := s.load(ctx)
	if err != nil {
		return Stats{}, err
	}
	return favorites.Stats(), nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if err := event_bus.PublishTyped(ctx, s.eventBus, eventType, data); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
