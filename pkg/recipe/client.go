package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/klokku/recipebook/internal/metrics"
	log "github.com/sirupsen/logrus"
)

var ErrRecipeNotFound = errors.New("recipe not found")
var ErrRateLimited = errors.New("recipe API rate limit exceeded")

// Client is the boundary to the third-party recipe API. Every recipe it returns is already
// normalised, so the rest of the application can rely on the Recipe invariants.
type Client interface {
	Search(ctx context.Context, params SearchParams) (SearchResult, error) // /recipes/complexSearch
	GetRecipe(ctx context.Context, id int) (Recipe, error)                 // /recipes/{id}/information
	GetRandom(ctx context.Context, number int) ([]Recipe, error)           // /recipes/random
	GetInstructions(ctx context.Context, id int) ([]Instructions, error)   // /recipes/{id}/analyzedInstructions
	GetSimilar(ctx context.Context, id int) ([]SimilarRecipe, error)       // /recipes/{id}/similar
	GetNutrition(ctx context.Context, id int) (NutritionInfo, error)       // /recipes/{id}/nutritionWidget.json
}

type ClientImpl struct {
	baseUrl    string
	apiKey     string
	httpClient *http.Client
	pageSize   int
}

func NewClient(baseUrl string, apiKey string, timeout time.Duration) *ClientImpl {
	return &ClientImpl{
		baseUrl:    strings.TrimSuffix(baseUrl, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		pageSize:   DefaultPageSize,
	}
}

// WithPageSize sets the number of search results requested when the caller does not ask for a number.
func (c *ClientImpl) WithPageSize(pageSize int) *ClientImpl {
	if pageSize > 0 {
		c.pageSize = pageSize
	}
	return c
}

func (c *ClientImpl) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	query := url.Values{}
	query.Set("addRecipeInformation", "true")
	query.Set("fillIngredients", "true")
	number := params.Number
	if number <= 0 {
		number = c.pageSize
	}
	query.Set("number", strconv.Itoa(number))
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	setIfNotEmpty(query, "query", params.Query)
	setIfNotEmpty(query, "cuisine", params.Cuisine)
	setIfNotEmpty(query, "diet", params.Diet)
	setIfNotEmpty(query, "intolerances", params.Intolerances)
	setIfNotEmpty(query, "type", params.Type)
	setIfNotEmpty(query, "sort", params.Sort)
	if params.MaxReadyTime > 0 {
		query.Set("maxReadyTime", strconv.Itoa(params.MaxReadyTime))
	}

	var response struct {
		Results      []apiRecipe `json:"results"`
		TotalResults int         `json:"totalResults"`
		Offset       int         `json:"offset"`
		Number       int         `json:"number"`
	}
	if err := c.getJSON(ctx, "search", "/recipes/complexSearch", query, &response); err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{
		Results:      make([]Recipe, 0, len(response.Results)),
		TotalResults: response.TotalResults,
		Offset:       response.Offset,
		Number:       response.Number,
	}
	for _, r := range response.Results {
		result.Results = append(result.Results, r.toRecipe())
	}
	return result, nil
}

func (c *ClientImpl) GetRecipe(ctx context.Context, id int) (Recipe, error) {
	var response apiRecipe
	path := fmt.Sprintf("/recipes/%d/information", id)
	if err := c.getJSON(ctx, "information", path, url.Values{}, &response); err != nil {
		return Recipe{}, err
	}
	return response.toRecipe(), nil
}

func (c *ClientImpl) GetRandom(ctx context.Context, number int) ([]Recipe, error) {
	if number <= 0 {
		number = DefaultRandomCount
	}
	query := url.Values{}
	query.Set("number", strconv.Itoa(number))

	var response struct {
		Recipes []apiRecipe `json:"recipes"`
	}
	if err := c.getJSON(ctx, "random", "/recipes/random", query, &response); err != nil {
		return nil, err
	}
	recipes := make([]Recipe, 0, len(response.Recipes))
	for _, r := range response.Recipes {
		recipes = append(recipes, r.toRecipe())
	}
	return recipes, nil
}

func (c *ClientImpl) GetInstructions(ctx context.Context, id int) ([]Instructions, error) {
	var instructions []Instructions
	path := fmt.Sprintf("/recipes/%d/analyzedInstructions", id)
	if err := c.getJSON(ctx, "instructions", path, url.Values{}, &instructions); err != nil {
		return nil, err
	}
	if instructions == nil {
		instructions = []Instructions{}
	}
	return instructions, nil
}

func (c *ClientImpl) GetSimilar(ctx context.Context, id int) ([]SimilarRecipe, error) {
	var similar []SimilarRecipe
	path := fmt.Sprintf("/recipes/%d/similar", id)
	if err := c.getJSON(ctx, "similar", path, url.Values{}, &similar); err != nil {
		return nil, err
	}
	if similar == nil {
		similar = []SimilarRecipe{}
	}
	return similar, nil
}

func (c *ClientImpl) GetNutrition(ctx context.Context, id int) (NutritionInfo, error) {
	var nutrition NutritionInfo
	path := fmt.Sprintf("/recipes/%d/nutritionWidget.json", id)
	if err := c.getJSON(ctx, "nutrition", path, url.Values{}, &nutrition); err != nil {
		return NutritionInfo{}, err
	}
	return nutrition, nil
}

func (c *ClientImpl) getJSON(ctx context.Context, endpoint string, path string, query url.Values, out any) error {
	query.Set("apiKey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+path+"?"+query.Encode(), nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecipeApiRequests.WithLabelValues(endpoint, "error").Inc()
		log.Errorf("Failed to execute request to %s: %v", path, err)
		return fmt.Errorf("recipe API request failed: %w", err)
	}
	defer resp.Body.Close()
	metrics.RecipeApiRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.RecipeApiDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrRecipeNotFound
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusTooManyRequests:
		log.Warnf("Recipe API quota exhausted (status %d)", resp.StatusCode)
		return ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("recipe API returned unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorf("Failed to decode response from %s: %v", path, err)
		return fmt.Errorf("failed to decode recipe API response: %w", err)
	}
	return nil
}

func setIfNotEmpty(query url.Values, key string, value string) {
	if value != "" {
		query.Set(key, value)
	}
}

// apiRecipe is the recipe payload as the API sends it. Any field may be missing or null.
type apiRecipe struct {
	Id                  int             `json:"id"`
	Title               string          `json:"title"`
	Image               string          `json:"image"`
	Servings            int             `json:"servings"`
	ReadyInMinutes      int             `json:"readyInMinutes"`
	Cuisines            []string        `json:"cuisines"`
	DishTypes           []string        `json:"dishTypes"`
	Diets               []string        `json:"diets"`
	Summary             *string         `json:"summary"`
	Instructions        *string         `json:"instructions"`
	ExtendedIngredients []apiIngredient `json:"extendedIngredients"`
}

type apiIngredient struct {
	Id       int     `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Original string  `json:"original"`
}

func (r apiRecipe) toRecipe() Recipe {
	recipe := Recipe{
		Id:             r.Id,
		Title:          r.Title,
		Image:          r.Image,
		Servings:       r.Servings,
		ReadyInMinutes: r.ReadyInMinutes,
		Cuisines:       nonNil(r.Cuisines),
		DishTypes:      make([]string, 0, len(r.DishTypes)),
		Diets:          nonNil(r.Diets),
		Ingredients:    make([]Ingredient, 0, len(r.ExtendedIngredients)),
	}
	if recipe.Servings < 1 {
		recipe.Servings = 1
	}
	if recipe.ReadyInMinutes < 0 {
		recipe.ReadyInMinutes = 0
	}
	if r.Summary != nil {
		recipe.Summary = *r.Summary
	}
	if r.Instructions != nil {
		recipe.Instructions = *r.Instructions
	}
	for _, dishType := range r.DishTypes {
		recipe.DishTypes = append(recipe.DishTypes, strings.ToLower(dishType))
	}
	for _, i := range r.ExtendedIngredients {
		amount := i.Amount
		if amount < 0 {
			amount = 0
		}
		recipe.Ingredients = append(recipe.Ingredients, Ingredient{
			Id:       i.Id,
			Name:     i.Name,
			Amount:   amount,
			Unit:     i.Unit,
			Original: i.Original,
		})
	}
	return recipe
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
