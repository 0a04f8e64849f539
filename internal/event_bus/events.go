package event_bus

const (
	FavoriteAddedType    EventType = "favorites.recipe.added"
	FavoriteRemovedType  EventType = "favorites.recipe.removed"
	FavoritesClearedType EventType = "favorites.cleared"
	MealPlannedType      EventType = "meal_plan.meal.added"
	MealUnplannedType    EventType = "meal_plan.meal.removed"
	MealPlanClearedType  EventType = "meal_plan.cleared"
)

type FavoriteAdded struct {
	RecipeId int
	Title    string
}

type FavoriteRemoved struct {
	RecipeId int
}

type FavoritesCleared struct {
	Count int
}

type MealPlanned struct {
	Day      string
	RecipeId int
	Title    string
}

type MealUnplanned struct {
	Day      string
	RecipeId int
	// Removed is the number of entries dropped; a recipe can be planned several times a day.
	Removed int
}

// MealPlanCleared is published for a single day, or for the whole week when Day is empty.
type MealPlanCleared struct {
	Day     string
	Removed int
}
