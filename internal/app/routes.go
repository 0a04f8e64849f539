package app

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Recipes
	r.HandleFunc("/api/recipe/search", deps.RecipeHandler.Search).Methods("GET")
	r.HandleFunc("/api/recipe/random", deps.RecipeHandler.Random).Methods("GET")
	r.HandleFunc("/api/recipe/filters", deps.RecipeHandler.Filters).Methods("GET")
	r.HandleFunc("/api/recipe/{recipeId}", deps.RecipeHandler.GetRecipe).Methods("GET")
	r.HandleFunc("/api/recipe/{recipeId}/instructions", deps.RecipeHandler.GetInstructions).Methods("GET")
	r.HandleFunc("/api/recipe/{recipeId}/nutrition", deps.RecipeHandler.GetNutrition).Methods("GET")
	r.HandleFunc("/api/recipe/{recipeId}/similar", deps.RecipeHandler.GetSimilar).Methods("GET")
	r.HandleFunc("/api/recipe/{recipeId}/scaled", deps.RecipeHandler.GetScaled).Methods("GET")

	// Favorites
	r.HandleFunc("/api/favorites", deps.FavoritesHandler.GetFavorites).Methods("GET")
	r.HandleFunc("/api/favorites", deps.FavoritesHandler.AddFavorite).Methods("POST")
	r.HandleFunc("/api/favorites", deps.FavoritesHandler.ClearFavorites).Methods("DELETE")
	r.HandleFunc("/api/favorites/stats", deps.FavoritesHandler.GetStats).Methods("GET")
	r.HandleFunc("/api/favorites/{recipeId}", deps.FavoritesHandler.IsFavorite).Methods("GET")
	r.HandleFunc("/api/favorites/{recipeId}", deps.FavoritesHandler.RemoveFavorite).Methods("DELETE")
	r.HandleFunc("/api/favorites/{recipeId}/toggle", deps.FavoritesHandler.ToggleFavorite).Methods("PUT")

	// Meal plan
	r.HandleFunc("/api/mealplan", deps.WeeklyPlanHandler.GetPlan).Methods("GET")
	r.HandleFunc("/api/mealplan", deps.WeeklyPlanHandler.ClearWeek).Methods("DELETE")
	r.HandleFunc("/api/mealplan/nutrition", deps.WeeklyPlanHandler.GetNutrition).Methods("GET")
	r.HandleFunc("/api/mealplan/stats", deps.WeeklyPlanHandler.GetStats).Methods("GET")
	r.HandleFunc("/api/mealplan/day/{day}", deps.WeeklyPlanHandler.GetDay).Methods("GET")
	r.HandleFunc("/api/mealplan/day/{day}", deps.WeeklyPlanHandler.AddMeal).Methods("POST")
	r.HandleFunc("/api/mealplan/day/{day}", deps.WeeklyPlanHandler.ClearDay).Methods("DELETE")
	r.HandleFunc("/api/mealplan/day/{day}/meal/{recipeId}", deps.WeeklyPlanHandler.RemoveMeal).Methods("DELETE")

	// Shopping list
	r.HandleFunc("/api/shoppinglist", deps.ShoppingHandler.GetShoppingList).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")

	// Metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
}
