package weekly_plan

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/recipebook/internal/rest"
	"github.com/klokku/recipebook/pkg/recipe"
	"github.com/klokku/recipebook/pkg/user"
	log "github.com/sirupsen/logrus"
)

type DayPlanDTO struct {
	Day   string             `json:"day"`
	Meals []recipe.RecipeDTO `json:"meals"`
}

type WeeklyPlanDTO struct {
	Days []DayPlanDTO `json:"days"`
}

type NutritionDTO struct {
	Total        NutritionTotals `json:"total"`
	DailyAverage NutritionTotals `json:"dailyAverage"`
}

type RemovedDTO struct {
	Removed int `json:"removed"`
}

type addMealRequest struct {
	RecipeId int `json:"recipeId" validate:"required,gt=0"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// GetPlan godoc
// @Summary Get the weekly meal plan
// @Description All seven days, Monday first, with the meals in the order they were added
// @Tags MealPlan
// @Produce json
// @Success 200 {object} WeeklyPlanDTO
// @Failure 403 {string} string "User not found"
// @Router /api/mealplan [get]
// @Security XUserId
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetPlan(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, WeeklyPlanToDTO(plan))
}

// GetDay godoc
// @Summary Get meals of a day
// @Tags MealPlan
// @Produce json
// @Param day path string true "Day of week, e.g. Monday"
// @Param mealType query string false "Breakfast, Lunch, Dinner or Snack"
// @Success 200 {array} recipe.RecipeDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid day or meal type"
// @Router /api/mealplan/day/{day} [get]
// @Security XUserId
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	day, ok := dayFromPath(w, r)
	if !ok {
		return
	}
	mealType := r.URL.Query().Get("mealType")
	if mealType != "" {
		parsed, err := ParseMealType(mealType)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid meal type", err.Error())
			return
		}
		mealType = parsed
	}

	meals, err := h.service.GetMealsForDay(r.Context(), day, mealType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, recipesToDTO(meals))
}

// AddMeal godoc
// @Summary Plan a recipe on a day
// @Tags MealPlan
// @Accept json
// @Produce json
// @Param day path string true "Day of week, e.g. Monday"
// @Param meal body addMealRequest true "Recipe to plan"
// @Success 201 {object} recipe.RecipeDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {object} rest.ErrorResponse "Recipe not found"
// @Router /api/mealplan/day/{day} [post]
// @Security XUserId
func (h *Handler) AddMeal(w http.ResponseWriter, r *http.Request) {
	day, ok := dayFromPath(w, r)
	if !ok {
		return
	}
	var request addMealRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	if err := rest.ValidateStruct(request); err != nil {
		rest.WriteValidationError(w, err)
		return
	}

	meal, err := h.service.AddMeal(r.Context(), day, request.RecipeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(recipe.RecipeToDTO(meal)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// RemoveMeal godoc
// @Summary Remove a recipe from a day
// @Description Removes every occurrence of the recipe on that day. Removing an absent recipe is not an error.
// @Tags MealPlan
// @Produce json
// @Param day path string true "Day of week, e.g. Monday"
// @Param recipeId path int true "Recipe ID"
// @Success 200 {object} RemovedDTO
// @Router /api/mealplan/day/{day}/meal/{recipeId} [delete]
// @Security XUserId
func (h *Handler) RemoveMeal(w http.ResponseWriter, r *http.Request) {
	day, ok := dayFromPath(w, r)
	if !ok {
		return
	}
	recipeId, ok := recipe.RecipeIdFromPath(w, r)
	if !ok {
		return
	}
	removed, err := h.service.RemoveMeal(r.Context(), day, recipeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, RemovedDTO{Removed: removed})
}

// ClearDay godoc
// @Summary Clear a day
// @Tags MealPlan
// @Produce json
// @Param day path string true "Day of week, e.g. Monday"
// @Success 200 {object} RemovedDTO
// @Router /api/mealplan/day/{day} [delete]
// @Security XUserId
func (h *Handler) ClearDay(w http.ResponseWriter, r *http.Request) {
	day, ok := dayFromPath(w, r)
	if !ok {
		return
	}
	removed, err := h.service.ClearDay(r.Context(), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, RemovedDTO{Removed: removed})
}

// ClearWeek godoc
// @Summary Clear the whole week
// @Tags MealPlan
// @Produce json
// @Success 200 {object} RemovedDTO
// @Router /api/mealplan [delete]
// @Security XUserId
func (h *Handler) ClearWeek(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.ClearWeek(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, RemovedDTO{Removed: removed})
}

// GetNutrition godoc
// @Summary Weekly nutrition totals
// @Description Sum over every planned meal plus the rounded average per day of the week
// @Tags MealPlan
// @Produce json
// @Success 200 {object} NutritionDTO
// @Router /api/mealplan/nutrition [get]
// @Security XUserId
func (h *Handler) GetNutrition(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.GetNutrition(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, NutritionDTO{Total: totals, DailyAverage: totals.DailyAverage()})
}

// GetStats godoc
// @Summary Weekly plan statistics
// @Tags MealPlan
// @Produce json
// @Success 200 {object} Stats
// @Router /api/mealplan/stats [get]
// @Security XUserId
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, stats)
}

func WeeklyPlanToDTO(plan WeeklyPlan) WeeklyPlanDTO {
	days := make([]DayPlanDTO, 0, DaysInWeek)
	for _, day := range Days {
		days = append(days, DayPlanDTO{Day: day.String(), Meals: recipesToDTO(plan[day])})
	}
	return WeeklyPlanDTO{Days: days}
}

func recipesToDTO(recipes []recipe.Recipe) []recipe.RecipeDTO {
	dtos := make([]recipe.RecipeDTO, 0, len(recipes))
	for _, meal := range recipes {
		dtos = append(dtos, recipe.RecipeToDTO(meal))
	}
	return dtos
}

func dayFromPath(w http.ResponseWriter, r *http.Request) (Day, bool) {
	day, err := ParseDay(mux.Vars(r)["day"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid day", "Parameter day must be one of Monday to Sunday")
		return 0, false
	}
	return day, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	if recipe.WriteFetchError(w, err) {
		return
	}
	switch {
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "User not found", http.StatusForbidden)
	case errors.Is(err, ErrInvalidDay):
		rest.WriteError(w, http.StatusBadRequest, "Invalid day", err.Error())
	default:
		log.Errorf("meal plan request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
