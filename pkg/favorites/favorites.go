package favorites

import (
	"errors"
	"math"

	"github.com/klokku/recipebook/pkg/recipe"
)

var ErrAlreadyFavorite = errors.New("recipe is already a favorite")
var ErrNotFavorite = errors.New("recipe is not a favorite")

// Favorites is the user's list of favorite recipes in the order they were added.
// A recipe id appears at most once.
type Favorites []recipe.Recipe

type Stats struct {
	Total int `json:"total"`
	// CuisineTypes lists every distinct cuisine in order of first appearance.
	CuisineTypes    []string `json:"cuisineTypes"`
	AverageCookTime int      `json:"averageCookTime"`
}

func (f Favorites) Contains(recipeId int) bool {
	for _, r := range f {
		if r.Id == recipeId {
			return true
		}
	}
	return false
}

// Add returns a new list with r appended, or ErrAlreadyFavorite when its id is already present.
func (f Favorites) Add(r recipe.Recipe) (Favorites, error) {
	if f.Contains(r.Id) {
		return f, ErrAlreadyFavorite
	}
	added := make(Favorites, 0, len(f)+1)
	added = append(added, f...)
	return append(added, r), nil
}

// Remove returns a new list without the recipe, or ErrNotFavorite when it is absent.
func (f Favorites) Remove(recipeId int) (Favorites, error) {
	remaining := make(Favorites, 0, len(f))
	for _, r := range f {
		if r.Id != recipeId {
			remaining = append(remaining, r)
		}
	}
	if len(remaining) == len(f) {
		return f, ErrNotFavorite
	}
	return remaining, nil
}

// ByCategory selects the favorites whose cuisines or dish types contain category.
func (f Favorites) ByCategory(category string) []recipe.Recipe {
	selected := make([]recipe.Recipe, 0)
	for _, r := range f {
		if r.HasCuisine(category) || r.HasDishType(category) {
			selected = append(selected, r)
		}
	}
	return selected
}

func (f Favorites) Stats() Stats {
	stats := Stats{Total: len(f), CuisineTypes: make([]string, 0)}
	seen := make(map[string]bool)
	totalCookTime := 0
	for _, r := range f {
		totalCookTime += r.ReadyInMinutes
		for _, cuisine := range r.Cuisines {
			if !seen[cuisine] {
				seen[cuisine] = true
				stats.CuisineTypes = append(stats.CuisineTypes, cuisine)
			}
		}
	}
	if len(f) > 0 {
		stats.AverageCookTime = int(math.Round(float64(totalCookTime) / float64(len(f))))
	}
	return stats
}
