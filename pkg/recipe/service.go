package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/klokku/recipebook/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
	// GetRecipe returns the recipe with its nutrition attached when the API can provide it.
	GetRecipe(ctx context.Context, id int) (Recipe, error)
	GetRandom(ctx context.Context, number int) ([]Recipe, error)
	GetInstructions(ctx context.Context, id int) ([]Instructions, error)
	GetSimilar(ctx context.Context, id int) ([]SimilarRecipe, error)
	GetNutrition(ctx context.Context, id int) (NutritionInfo, error)
	GetScaled(ctx context.Context, id int, servings int) (Recipe, error)
}

type ServiceImpl struct {
	client   Client
	recipes  *expirable.LRU[int, Recipe]
	searches *expirable.LRU[string, SearchResult]
}

func NewService(client Client, cacheSize int, cacheTTL time.Duration) *ServiceImpl {
	return &ServiceImpl{
		client:   client,
		recipes:  expirable.NewLRU[int, Recipe](cacheSize, nil, cacheTTL),
		searches: expirable.NewLRU[string, SearchResult](cacheSize, nil, cacheTTL),
	}
}

func (s *ServiceImpl) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	key := fmt.Sprintf("%+v", params)
	if cached, ok := s.searches.Get(key); ok {
		metrics.RecipeCacheLookups.WithLabelValues("search", "hit").Inc()
		return cached, nil
	}
	metrics.RecipeCacheLookups.WithLabelValues("search", "miss").Inc()

	result, err := s.client.Search(ctx, params)
	if err != nil {
		return SearchResult{}, err
	}
	log.Debugf("search %q returned %d of %d results", params.Query, len(result.Results), result.TotalResults)
	s.searches.Add(key, result)
	return result, nil
}

func (s *ServiceImpl) GetRecipe(ctx context.Context, id int) (Recipe, error) {
	if cached, ok := s.recipes.Get(id); ok {
		metrics.RecipeCacheLookups.WithLabelValues("recipe", "hit").Inc()
		return cached, nil
	}
	metrics.RecipeCacheLookups.WithLabelValues("recipe", "miss").Inc()

	recipe, err := s.client.GetRecipe(ctx, id)
	if err != nil {
		return Recipe{}, err
	}
	if recipe.Nutrition == nil {
		nutrition, err := s.client.GetNutrition(ctx, id)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return Recipe{}, err
			}
			log.Warnf("nutrition unavailable for recipe %d: %v", id, err)
		} else {
			recipe.Nutrition = &nutrition
		}
	}
	s.recipes.Add(id, recipe)
	return recipe, nil
}

func (s *ServiceImpl) GetRandom(ctx context.Context, number int) ([]Recipe, error) {
	return s.client.GetRandom(ctx, number)
}

func (s *ServiceImpl) GetInstructions(ctx context.Context, id int) ([]Instructions, error) {
	return s.client.GetInstructions(ctx, id)
}

func (s *ServiceImpl) GetSimilar(ctx context.Context, id int) ([]SimilarRecipe, error) {
	return s.client.GetSimilar(ctx, id)
}

func (s *ServiceImpl) GetNutrition(ctx context.Context, id int) (NutritionInfo, error) {
	if cached, ok := s.recipes.Get(id); ok && cached.Nutrition != nil {
		return *cached.Nutrition, nil
	}
	return s.client.GetNutrition(ctx, id)
}

func (s *ServiceImpl) GetScaled(ctx context.Context, id int, servings int) (Recipe, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return Recipe{}, err
	}
	return recipe.Scaled(servings), nil
}
