package recipe

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/klokku/recipebook/internal/rest"
	log "github.com/sirupsen/logrus"
)

type RecipeDTO struct {
	Recipe
	ReadyIn string `json:"readyIn"`
}

type NutritionDTO struct {
	NutritionInfo
	Display NutritionInfo `json:"display"`
}

type FiltersDTO struct {
	Cuisines     []string     `json:"cuisines"`
	Diets        []string     `json:"diets"`
	MealTypes    []string     `json:"mealTypes"`
	Intolerances []string     `json:"intolerances"`
	SortOptions  []SortOption `json:"sortOptions"`
}

type SearchResultDTO struct {
	Results      []RecipeDTO `json:"results"`
	TotalResults int         `json:"totalResults"`
	Offset       int         `json:"offset"`
	Number       int         `json:"number"`
}

type scaleRequest struct {
	Servings int `validate:"min=1,max=99"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Search godoc
// @Summary Search recipes
// @Description Search recipes by keyword and filters. An empty query returns no results.
// @Tags Recipe
// @Produce json
// @Param query query string false "Keyword"
// @Param cuisine query string false "Cuisine"
// @Param diet query string false "Diet"
// @Param intolerances query string false "Comma separated intolerances"
// @Param type query string false "Meal type"
// @Param maxReadyTime query int false "Maximum ready time in minutes"
// @Param sort query string false "Sort option"
// @Param number query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} SearchResultDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid search parameters"
// @Failure 429 {object} rest.ErrorResponse "Recipe API rate limit exceeded"
// @Router /api/recipe/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := searchParamsFromQuery(r.URL.Query())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid search parameters", err.Error())
		return
	}
	if err := rest.ValidateStruct(params); err != nil {
		rest.WriteValidationError(w, err)
		return
	}
	if params.Query == "" {
		rest.WriteJSON(w, SearchResultDTO{Results: []RecipeDTO{}, Number: params.Number})
		return
	}

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dto := SearchResultDTO{
		Results:      make([]RecipeDTO, 0, len(result.Results)),
		TotalResults: result.TotalResults,
		Offset:       result.Offset,
		Number:       result.Number,
	}
	for _, recipe := range result.Results {
		dto.Results = append(dto.Results, RecipeToDTO(recipe))
	}
	rest.WriteJSON(w, dto)
}

// Random godoc
// @Summary Random recipes
// @Tags Recipe
// @Produce json
// @Param number query int false "Number of recipes (default 10)"
// @Success 200 {array} RecipeDTO
// @Router /api/recipe/random [get]
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	number := DefaultRandomCount
	if value := r.URL.Query().Get("number"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 || parsed > 100 {
			rest.WriteError(w, http.StatusBadRequest, "Invalid number", "Parameter number must be between 1 and 100")
			return
		}
		number = parsed
	}
	recipes, err := h.service.GetRandom(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	dtos := make([]RecipeDTO, 0, len(recipes))
	for _, recipe := range recipes {
		dtos = append(dtos, RecipeToDTO(recipe))
	}
	rest.WriteJSON(w, dtos)
}

// Filters godoc
// @Summary Available search filters
// @Tags Recipe
// @Produce json
// @Success 200 {object} FiltersDTO
// @Router /api/recipe/filters [get]
func (h *Handler) Filters(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, FiltersDTO{
		Cuisines:     Cuisines,
		Diets:        Diets,
		MealTypes:    MealTypes,
		Intolerances: Intolerances,
		SortOptions:  SortOptions,
	})
}

// GetRecipe godoc
// @Summary Recipe detail
// @Tags Recipe
// @Produce json
// @Param recipeId path int true "Recipe ID"
// @Success 200 {object} RecipeDTO
// @Failure 404 {object} rest.ErrorResponse "Recipe not found"
// @Router /api/recipe/{recipeId} [get]
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	recipeId, ok := RecipeIdFromPath(w, r)
	if !ok {
		return
	}
	recipe, err := h.service.GetRecipe(r.Context(), recipeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, RecipeToDTO(recipe))
}

// GetInstructions godoc
// @Summary Analyzed instructions of a recipe
// @Tags Recipe
// @Produce json
// @Param recipeId path int true "Recipe ID"
// @Success 200 {array} Instructions
// @Router /api/recipe/{recipeId}/instructions [get]
func (h *Handler) GetInstructions(w http.ResponseWriter, r *http.Request) {
	recipeId, ok := RecipeIdFromPath(w, r)
	if !ok {
		return
	}
	instructions, err := h.service.GetInstructions(r.Context(), recipeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, instructions)
}

// GetNutrition godoc
// @Summary Nutrition facts of a recipe
// @Tags Recipe
// @Produce json
// @Param recipeId path int true "Recipe ID"
// @Success 200 {object} NutritionDTO
// @Router /api/recipe/{recipeId}/nutrition [get]
func (h *Handler) GetNutrition(w http.ResponseWriter, r *http.Request) {
	recipeId, ok := RecipeIdFromPath(w, r)
	if !ok {
		return
	}
	nutrition, err := h.service.GetNutrition(r.Context(), recipeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, NutritionDTO{
		NutritionInfo: nutrition,
		Display: NutritionInfo{
			Calories: FormatNutrition(nutrition.Calories),
			Protein:  FormatNutrition(nutrition.Protein),
			Carbs:    FormatNutrition(nutrition.Carbs),
			Fat:      FormatNutrition(nutrition.Fat),
		},
	})
}

// GetSimilar godoc
// @Summary Similar recipes
// @Tags Recipe
// @Produce json
// @Param recipeId path int true "Recipe ID"
// @Success 200 {array} SimilarRecipe
// @Router /api/recipe/{recipeId}/similar [get]
func (h *Handler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	recipeId, ok := RecipeIdFromPath(w, r)
	if !ok {
		return
	}
	similar, err := h.service.GetSimilar(r.Context(), recipeId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, similar)
}

// GetScaled godoc
// @Summary Recipe with ingredients scaled to a serving count
// @Tags Recipe
// @Produce json
// @Param recipeId path int true "Recipe ID"
// @Param servings query int true "Desired servings (1-99)"
// @Success 200 {object} RecipeDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid servings"
// @Router /api/recipe/{recipeId}/scaled [get]
func (h *Handler) GetScaled(w http.ResponseWriter, r *http.Request) {
	recipeId, ok := RecipeIdFromPath(w, r)
	if !ok {
		return
	}
	servings, err := strconv.Atoi(r.URL.Query().Get("servings"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid servings format", "Parameter servings must be a number")
		return
	}
	request := scaleRequest{Servings: servings}
	if err := rest.ValidateStruct(request); err != nil {
		rest.WriteValidationError(w, err)
		return
	}

	scaled, err := h.service.GetScaled(r.Context(), recipeId, request.Servings)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.WriteJSON(w, RecipeToDTO(scaled))
}

func RecipeToDTO(recipe Recipe) RecipeDTO {
	return RecipeDTO{
		Recipe:  recipe,
		ReadyIn: FormatTime(recipe.ReadyInMinutes),
	}
}

// RecipeIdFromPath reads the {recipeId} path variable, answering 400 when it is not a positive number.
func RecipeIdFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	recipeId, err := strconv.Atoi(mux.Vars(r)["recipeId"])
	if err != nil || recipeId <= 0 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid recipeId format", "Parameter recipeId must be a positive number")
		return 0, false
	}
	return recipeId, true
}

// WriteFetchError maps recipe API failures to HTTP responses.
func WriteFetchError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, ErrRecipeNotFound):
		rest.WriteError(w, http.StatusNotFound, "Recipe not found", "")
	case errors.Is(err, ErrRateLimited):
		rest.WriteError(w, http.StatusTooManyRequests, "API rate limit exceeded. Please try again later.", "")
	default:
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	if WriteFetchError(w, err) {
		return
	}
	log.Errorf("recipe request failed: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func searchParamsFromQuery(query url.Values) (SearchParams, error) {
	params := DefaultSearchParams()
	params.Query = query.Get("query")
	params.Cuisine = query.Get("cuisine")
	params.Diet = query.Get("diet")
	params.Intolerances = query.Get("intolerances")
	params.Type = query.Get("type")
	if sort := query.Get("sort"); sort != "" {
		params.Sort = sort
	}

	ints := []struct {
		name   string
		target *int
	}{
		{"maxReadyTime", &params.MaxReadyTime},
		{"number", &params.Number},
		{"offset", &params.Offset},
	}
	for _, param := range ints {
		value := query.Get(param.name)
		if value == "" {
			continue
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return SearchParams{}, errors.New("parameter " + param.name + " must be a number")
		}
		*param.target = parsed
	}
	return params, nil
}
